// Package archive keeps generated tunes in Redis so they can be listed,
// fetched by ID and followed live.
//
// # Overview
//
// Generation is deterministic, so the archive is not needed to reproduce a
// tune: the seed and layout are enough. What it adds is a shared history. Every
// tune written with SaveTune gets a UUID, a creation timestamp and an entry in
// a per-seed index, and a copy of the record is published on the namespace's
// events channel for anyone running 'makemusic watch'.
//
// # Namespaces
//
// All keys and channels carry a namespace so several users or projects can
// share one Redis server without seeing each other's tunes.
//
// # Usage Example
//
//	client, err := archive.NewClient(&redis.Options{Addr: "localhost:6379"}, "default")
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer client.Close()
//
//	record := archive.NewTune("default", "default", notation, abcText, phraseTokens, 2)
//	if err := client.SaveTune(ctx, record); err != nil {
//		log.Fatal(err)
//	}
//
// # Redis Schema
//
// Tunes: makemusic:{namespace}:tune:{tune_id} (hash)
// Seed index: makemusic:{namespace}:seed:{seed} (hash, layout → tune_id)
//
// Pub/Sub channel: makemusic:{namespace}:tune_events
package archive
