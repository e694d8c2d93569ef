// Package siumai is a unified client library for third-party LLM services.
//
// It hides provider differences (OpenAI, Anthropic, Gemini, xAI, Groq,
// Ollama, MiniMaxi, SiliconFlow, DeepSeek, OpenRouter, Azure, Vertex, ...)
// behind one request/response/stream vocabulary and a registry of
// "provider:model" handles, while still letting callers reach
// provider-specific features through typed or open provider options.
//
// The data model lives in this package. The provider strategy objects
// live in package provider, the wire transformers in package transform,
// the SSE/JSON-line streaming engine in package stream, the HTTP call
// orchestration in package executor, and the provider:model handle
// cache in package registry.
package siumai
