// Package mcp exposes MoviePilot media-management tools over the Model
// Context Protocol.
//
// The server fronts a moviepilot.Client and registers a small tool surface
// for agent workflows: media/person search, media details, season episode
// lists, and subscription management. It serves either stdio (the default,
// for direct agent integration) or streamable HTTP guarded by an X-API-Key
// header.
//
// The server holds no state of its own; authentication against MoviePilot,
// including token refresh on expiry, is handled entirely by the client.
package mcp
