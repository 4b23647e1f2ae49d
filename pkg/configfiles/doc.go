// Package configfiles implements layered loading, merging and saving of
// self-describing JSON configuration documents.
//
// A document kind (for example the rule list in package rules) embeds [Base]
// and implements [File]. A [Group] then resolves up to three trust tiers of
// that kind inside a configuration directory:
//
//   - <basename>.json          user tier, always local, loaded synchronously
//   - <basename>.official.json official tier, may be refreshed from its
//     update URL, loaded asynchronously
//   - <basename>.*.json        third-party tier, each file loaded and merged
//     asynchronously, failures isolated per file
//
// LoadFiles never blocks the caller on network or disk for the asynchronous
// tiers; their results are exposed through [Async] handles that support both
// a non-blocking poll and a blocking wait. Re-invoking LoadFiles replaces the
// handles, so a superseded load can never write into a newer generation's
// slot.
package configfiles
