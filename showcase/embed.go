package showcase

import "embed"

// Assets holds showcase.js.
//
//go:embed embedded/*
var Assets embed.FS

// ScriptPath is where the app serves showcase.js.
const ScriptPath = "/assets/showcase.js"
