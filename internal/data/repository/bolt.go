package repository

import (
	"encoding/json"
	"fmt"

	"go.etcd.io/bbolt"
)

func boltPut[T any](tx *bbolt.Tx, bucket []byte, key string, value *T) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshal %s/%s: %w", bucket, key, err)
	}
	return tx.Bucket(bucket).Put([]byte(key), data)
}

// boltGet returns nil, nil when key is absent.
func boltGet[T any](tx *bbolt.Tx, bucket []byte, key string) (*T, error) {
	data := tx.Bucket(bucket).Get([]byte(key))
	if data == nil {
		return nil, nil
	}
	var value T
	if err := json.Unmarshal(data, &value); err != nil {
		return nil, fmt.Errorf("unmarshal %s/%s: %w", bucket, key, err)
	}
	return &value, nil
}

// boltScan decodes every value in bucket and keeps those accepted by keep.
func boltScan[T any](tx *bbolt.Tx, bucket []byte, keep func(*T) bool) ([]*T, error) {
	var out []*T
	err := tx.Bucket(bucket).ForEach(func(k, v []byte) error {
		var value T
		if err := json.Unmarshal(v, &value); err != nil {
			return fmt.Errorf("unmarshal %s/%s: %w", bucket, k, err)
		}
		if keep == nil || keep(&value) {
			out = append(out, &value)
		}
		return nil
	})
	return out, err
}

func page[T any](items []*T, limit, offset int) []*T {
	if offset >= len(items) {
		return nil
	}
	end := len(items)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	return items[offset:end]
}
