package main

// @title Article Likes Service API
// @version 1.0
// @description Likes of articles by users, with logging, tracing and metrics

// @contact.name API Support

// @license.name MIT

// @host localhost:8084
// @BasePath /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @tag.name Likes
// @tag.description Article like endpoints

// @tag.name Health
// @tag.description Health check endpoints
