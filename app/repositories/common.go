package repositories

import (
	"encoding/json"
	"fmt"

	"github.com/dgraph-io/badger/v4"
)

const (
	// Key prefixes for badger entries
	PostKeyPrefix  = "post:"
	TitleKeyPrefix = "title:"

	// Sequence key for auto-incrementing post IDs
	PostSeqKey = "seq:post"
)

func postKey(id int) []byte {
	return []byte(fmt.Sprintf("%s%d", PostKeyPrefix, id))
}

func titleKey(title string) []byte {
	return []byte(TitleKeyPrefix + title)
}

// getNextID gets the next available ID for a given sequence key
func getNextID(txn *badger.Txn, seqKey string) (int, error) {
	var id int
	item, err := txn.Get([]byte(seqKey))
	if err == badger.ErrKeyNotFound {
		id = 1
	} else if err != nil {
		return 0, err
	} else {
		err = item.Value(func(val []byte) error {
			if len(val) != 4 {
				return fmt.Errorf("corrupt sequence %q", seqKey)
			}
			id = int(val[0])<<24 | int(val[1])<<16 | int(val[2])<<8 | int(val[3])
			return nil
		})
		if err != nil {
			return 0, err
		}
		id++
	}

	// Store new ID
	idBytes := []byte{byte(id >> 24), byte(id >> 16), byte(id >> 8), byte(id)}
	if err := txn.Set([]byte(seqKey), idBytes); err != nil {
		return 0, err
	}

	return id, nil
}

// encodeID and decodeID store the owning post ID of a title index entry.
func encodeID(id int) []byte {
	return []byte(fmt.Sprintf("%d", id))
}

func decodeID(val []byte) (int, error) {
	var id int
	if _, err := fmt.Sscanf(string(val), "%d", &id); err != nil {
		return 0, fmt.Errorf("failed to decode id: %v", err)
	}
	return id, nil
}

// marshalEntity marshals an entity to JSON
func marshalEntity(entity interface{}) ([]byte, error) {
	data, err := json.Marshal(entity)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal entity: %v", err)
	}
	return data, nil
}

// unmarshalEntity unmarshals JSON data into an entity
func unmarshalEntity(data []byte, entity interface{}) error {
	if err := json.Unmarshal(data, entity); err != nil {
		return fmt.Errorf("failed to unmarshal entity: %v", err)
	}
	return nil
}
