package web

import "embed"

// StaticFS holds the embedded static assets (console stylesheet).
//
//go:embed static/*
var StaticFS embed.FS
