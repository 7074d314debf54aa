// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package messages builds every outbound message text.

All builders are pure: they take already-resolved names or ids and return
markdown strings, so message wording is testable without a platform client.
Mentions use the platform's <@id> and <#id> forms; emphasis uses markdown
bold.

The package covers announcements (daily question, weekly contest open and
close, month rollover), member-facing reward notices and score summaries, the
poll body and vote acknowledgements, the help text, and the fixed
error/guidance lines the dispatcher replies with.
*/
package messages
