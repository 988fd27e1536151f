package mdrcluster

// Config holds all environment variables
var Config struct {
	OpenAIAPIKey  string
	OpenFDAAPIKey string
}
