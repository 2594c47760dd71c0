package common

import (
	"github.com/nspcc-dev/neo-go/pkg/interop/native/std"
	"github.com/nspcc-dev/neo-go/pkg/interop/storage"
)

// SetSerialized serializes data and puts it into contract storage.
func SetSerialized(ctx storage.Context, key any, value any) {
	data := std.Serialize(value)
	storage.Put(ctx, key, data)
}

// ItemSize returns the number of bytes occupied by the storage item with the
// given key (key and value together), 0 if there is no such item.
func ItemSize(ctx storage.Context, key []byte) int {
	val := storage.Get(ctx, key)
	if val == nil {
		return 0
	}
	return len(key) + len(val.([]byte))
}

// PutMetered puts value into contract storage and returns the change of the
// occupied storage in bytes. It's negative if the new value is shorter than
// the replaced one.
func PutMetered(ctx storage.Context, key []byte, value any) int {
	before := ItemSize(ctx, key)
	storage.Put(ctx, key, value)
	return ItemSize(ctx, key) - before
}

// DeleteMetered removes the item from contract storage and returns the change
// of the occupied storage in bytes (zero or negative).
func DeleteMetered(ctx storage.Context, key []byte) int {
	before := ItemSize(ctx, key)
	if before == 0 {
		return 0
	}
	storage.Delete(ctx, key)
	return -before
}
