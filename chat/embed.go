package chat

import "embed"

// Assets holds chat.js.
//
//go:embed embedded/*
var Assets embed.FS

// ScriptPath is where the app serves chat.js.
const ScriptPath = "/assets/chat.js"
