// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package store persists the guild database to disk.

The durability contract is write-through full snapshots: there are no partial
or delta writes, just Load at startup and Save after every mutating operation.
Last mutation wins and the file always matches the latest in-memory state.

# Layout

One JSON document, a top-level object keyed by guild id string, each value a
serialized models.GuildState with its nested user map. Serialization is
deterministic (Go marshals map keys sorted), so saving an unchanged database
produces byte-identical output. There is no schema versioning; schema changes
require an out-of-band migration of the file.

# Failure Behaviour

A missing file loads as an empty database. An unparsable file is an error and
the process should not start. Save writes a sibling temp file and renames it
into place so a crash mid-write cannot truncate the previous snapshot.
*/
package store
