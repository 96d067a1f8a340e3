package observation

// KeyValue is a single key-value pair attached to an observation. Low
// cardinality pairs are safe to use as metric labels; high cardinality
// pairs belong on spans and log lines only.
type KeyValue struct {
	Key   string
	Value string
}

func KV(key, value string) KeyValue {
	return KeyValue{Key: key, Value: value}
}

// appendKeyValue keeps insertion order and de-duplicates by key, last
// write wins.
func appendKeyValue(kvs []KeyValue, kv KeyValue) []KeyValue {
	for i := range kvs {
		if kvs[i].Key == kv.Key {
			kvs[i].Value = kv.Value
			return kvs
		}
	}
	return append(kvs, kv)
}
