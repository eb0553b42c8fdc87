package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// JSONMap is a flat record stored in a JSON(B) column.
type JSONMap map[string]any

func (m JSONMap) Value() (driver.Value, error) {
	if m == nil {
		return "{}", nil
	}
	b, err := json.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("encode kv value: %w", err)
	}
	return string(b), nil
}

func (m *JSONMap) Scan(src any) error {
	var raw []byte
	switch v := src.(type) {
	case nil:
		*m = JSONMap{}
		return nil
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("decode kv value: unsupported type %T", src)
	}

	decoded := JSONMap{}
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return fmt.Errorf("decode kv value: %w", err)
	}
	*m = decoded
	return nil
}

// KVEntry is one row of the kv_store table shared by every submission category.
type KVEntry struct {
	Key   string  `gorm:"type:text;primaryKey"`
	Value JSONMap `gorm:"type:jsonb;not null"`
}

func (KVEntry) TableName() string { return "kv_store" }
