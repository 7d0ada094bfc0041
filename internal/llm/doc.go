// Package llm talks to language model providers to produce short
// financial advice. It supports Gemini, OpenAI, Anthropic and the local
// Claude Code CLI, with retry logic and rate limiting.
package llm
