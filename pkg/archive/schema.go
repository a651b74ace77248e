package archive

import "fmt"

// Redis key pattern helpers
//
// Key pattern: makemusic:{namespace}:{entity}:{id}
// Channel pattern: makemusic:{namespace}:tune_events

// TuneKey returns the Redis key for a tune record.
// Pattern: makemusic:{namespace}:tune:{tune_id}
func TuneKey(namespace, tuneID string) string {
	return fmt.Sprintf("makemusic:%s:tune:%s", namespace, tuneID)
}

// TuneKeyPrefix returns the prefix shared by every tune key in a namespace.
func TuneKeyPrefix(namespace string) string {
	return fmt.Sprintf("makemusic:%s:tune:", namespace)
}

// SeedKey returns the Redis key for the seed index hash. Fields are layout
// names (see LayoutField) and values are tune IDs.
// Pattern: makemusic:{namespace}:seed:{seed}
func SeedKey(namespace, seed string) string {
	return fmt.Sprintf("makemusic:%s:seed:%s", namespace, seed)
}

// LayoutField names a layout inside the seed index, e.g. "2x2".
func LayoutField(phrases, repeats int) string {
	return fmt.Sprintf("%dx%d", phrases, repeats)
}

// TuneEventsChannel returns the Pub/Sub channel name for tune events.
// Pattern: makemusic:{namespace}:tune_events
func TuneEventsChannel(namespace string) string {
	return fmt.Sprintf("makemusic:%s:tune_events", namespace)
}
