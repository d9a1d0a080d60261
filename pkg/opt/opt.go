package opt

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// A generic option type, which can set options on a request, agent or session
type Opt func(*Options) error

// Options is the set of applied options. String-like values are held as
// url.Values, everything else (toolkits, callbacks) as arbitrary values.
type Options struct {
	url.Values
	any map[string][]any
}

////////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// Apply returns a structure of applied options
func Apply(o ...Opt) (*Options, error) {
	opts := &Options{
		Values: make(url.Values),
		any:    make(map[string][]any),
	}
	for _, opt := range o {
		if opt == nil {
			continue
		}
		if err := opt(opts); err != nil {
			return nil, err
		}
	}
	return opts, nil
}

////////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Query returns the string values for the given keys
func (o *Options) Query(keys ...string) url.Values {
	query := make(url.Values)
	for _, key := range keys {
		if value, ok := o.Values[key]; ok {
			query[key] = value
		}
	}
	return query
}

// Get returns the first arbitrary value for key, or nil if not set
func (o *Options) Get(key string) any {
	if values, ok := o.any[key]; ok && len(values) > 0 {
		return values[0]
	}
	return nil
}

// GetAll returns all arbitrary values for key
func (o *Options) GetAll(key string) []any {
	return o.any[key]
}

// GetString returns the trimmed value for key, or empty string if not set
func (o *Options) GetString(key string) string {
	if values, ok := o.Values[key]; ok && len(values) > 0 {
		return strings.TrimSpace(values[0])
	}
	return ""
}

// GetFloat64 returns the float64 value for key, or 0 if not set or invalid
func (o *Options) GetFloat64(key string) float64 {
	if values, ok := o.Values[key]; ok && len(values) > 0 {
		if v, err := strconv.ParseFloat(strings.TrimSpace(values[0]), 64); err == nil {
			return v
		}
	}
	return 0
}

// GetUint returns the uint value for key, or 0 if not set or invalid
func (o *Options) GetUint(key string) uint {
	if values, ok := o.Values[key]; ok && len(values) > 0 {
		if v, err := strconv.ParseUint(strings.TrimSpace(values[0]), 10, 64); err == nil {
			return uint(v)
		}
	}
	return 0
}

// Has returns true if the key exists, either as a string or arbitrary value
func (o *Options) Has(key string) bool {
	if _, ok := o.Values[key]; ok {
		return true
	}
	_, ok := o.any[key]
	return ok
}

////////////////////////////////////////////////////////////////////////////////
// OPTIONS

// Error returns an option that always returns an error
func Error(err error) Opt {
	return func(o *Options) error {
		return err
	}
}

// SetString replaces the values for key
func SetString(key string, value string) Opt {
	return func(o *Options) error {
		o.Values.Set(key, value)
		return nil
	}
}

// SetUint replaces the value for key
func SetUint(key string, value uint) Opt {
	return func(o *Options) error {
		o.Values.Set(key, fmt.Sprint(value))
		return nil
	}
}

// SetFloat64 replaces the value for key
func SetFloat64(key string, value float64) Opt {
	return func(o *Options) error {
		o.Values.Set(key, strconv.FormatFloat(value, 'f', -1, 64))
		return nil
	}
}

// SetAny replaces the arbitrary value for key
func SetAny(key string, value any) Opt {
	return func(o *Options) error {
		o.any[key] = []any{value}
		return nil
	}
}

// AddAny appends an arbitrary value for key
func AddAny(key string, value any) Opt {
	return func(o *Options) error {
		o.any[key] = append(o.any[key], value)
		return nil
	}
}
