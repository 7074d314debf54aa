// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse resolves the bot configuration from flags and environment.

Flags take precedence, environment variables fill the gaps:

  - DISCORD_TOKEN (--token): gateway credential, required
  - DATABASE_PATH (-d): snapshot file path (default: database.json)

The token flag exists for local development only; in production the token
comes from the environment.
*/
package cliparse
