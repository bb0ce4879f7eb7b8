package dto

import (
	"bytes"
	"encoding/json"
)

// DashboardStats aggregates counts for the recruiter dashboard.
type DashboardStats struct {
	TotalJobs               int64          `json:"totalJobs"`
	TotalApplications       int64          `json:"totalApplications"`
	ApplicationsByStatus    *OrderedCounts `json:"applicationsByStatus"`
	RecentApplicationsByJob *OrderedCounts `json:"recentApplicationsByJob"`
}

// OrderedCounts is a string to count map that remembers insertion order.
// Setting an existing key replaces its value in place.
type OrderedCounts struct {
	keys   []string
	values map[string]int64
}

// NewOrderedCounts returns an empty map.
func NewOrderedCounts() *OrderedCounts {
	return &OrderedCounts{values: map[string]int64{}}
}

// Set stores value under key.
func (o *OrderedCounts) Set(key string, value int64) {
	if _, ok := o.values[key]; !ok {
		o.keys = append(o.keys, key)
	}
	o.values[key] = value
}

// Get returns the value for key.
func (o *OrderedCounts) Get(key string) (int64, bool) {
	v, ok := o.values[key]
	return v, ok
}

// Keys returns keys in insertion order.
func (o *OrderedCounts) Keys() []string {
	return append([]string(nil), o.keys...)
}

// Len returns the number of keys.
func (o *OrderedCounts) Len() int {
	return len(o.keys)
}

// Sum adds every value.
func (o *OrderedCounts) Sum() int64 {
	var total int64
	for _, v := range o.values {
		total += v
	}
	return total
}

// MarshalJSON writes a JSON object with keys in insertion order.
func (o *OrderedCounts) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range o.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		val, err := json.Marshal(o.values[k])
		if err != nil {
			return nil, err
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
