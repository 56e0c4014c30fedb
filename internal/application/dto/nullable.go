package dto

import "encoding/json"

// Nullable distingue en un PATCH parcial entre campo ausente, null explícito y valor.
//
//	ausente → Set=false
//	null    → Set=true, Valid=false
//	valor   → Set=true, Valid=true
type Nullable[T any] struct {
	Set   bool
	Valid bool
	Value T
}

// Value construye un Nullable con valor.
func Value[T any](v T) Nullable[T] {
	return Nullable[T]{Set: true, Valid: true, Value: v}
}

// Null construye un null explícito.
func Null[T any]() Nullable[T] {
	return Nullable[T]{Set: true}
}

func (n *Nullable[T]) UnmarshalJSON(b []byte) error {
	n.Set = true
	if string(b) == "null" {
		n.Valid = false
		var zero T
		n.Value = zero
		return nil
	}
	if err := json.Unmarshal(b, &n.Value); err != nil {
		return err
	}
	n.Valid = true
	return nil
}

func (n Nullable[T]) MarshalJSON() ([]byte, error) {
	if !n.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(n.Value)
}

// Ptr devuelve nil para null y un puntero a una copia del valor en otro caso.
func (n Nullable[T]) Ptr() *T {
	if !n.Valid {
		return nil
	}
	v := n.Value
	return &v
}
