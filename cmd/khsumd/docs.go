package main

// General API documentation for swaggo. Run `swag init` to regenerate docs.
//
// @title           khsumd API
// @version         1.0
// @description     HTTP API for Khmer text summarization with neural and extractive modes.
//
// @contact.name   khsumd maintainers
//
// @license.name   MIT
// @license.url    https://opensource.org/licenses/MIT
//
// @BasePath  /
//
// @schemes http
