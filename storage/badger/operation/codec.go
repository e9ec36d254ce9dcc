package operation

import (
	"errors"
	"fmt"

	"github.com/golang/snappy"
	"github.com/vmihailenco/msgpack"
)

var errNotSnappy = errors.New("value is not snappy compressed")

// codec turns stored entities into badger values: msgpack, optionally wrapped in
// snappy. Every value in a database must be written with the same setting.
type codec struct {
	compress bool
}

var values = codec{compress: true}

func (c codec) encode(entity interface{}) ([]byte, error) {
	data, err := msgpack.Marshal(entity)
	if err != nil {
		return nil, fmt.Errorf("could not encode %T: %w", entity, err)
	}
	if !c.compress {
		return data, nil
	}
	return snappy.Encode(nil, data), nil
}

func (c codec) decode(val []byte, entity interface{}) error {
	data := val
	if c.compress {
		var err error
		data, err = snappy.Decode(nil, val)
		if err != nil {
			return fmt.Errorf("%w: %v", errNotSnappy, err)
		}
	}
	err := msgpack.Unmarshal(data, entity)
	if err != nil {
		return fmt.Errorf("could not decode %T: %w", entity, err)
	}
	return nil
}
