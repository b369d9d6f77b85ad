package dso

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// ErrUnknownProperty marks a property name absent from the registry.
var ErrUnknownProperty = errors.New("unknown property")

type accessor func(*Device) ([]string, error)

// properties is the explicit registry of readable instrument properties.
// Names are snake_case, matching the historical CLI surface.
var properties = map[string]accessor{
	"idn": func(d *Device) ([]string, error) {
		idn, err := d.IDN()
		if err != nil {
			return nil, err
		}
		return []string{idn}, nil
	},
	"memory_depth":       floatProperty((*Device).MemoryDepth),
	"sample_rate":        floatProperty((*Device).SampleRate),
	"timebase_scale":     floatProperty((*Device).TimebaseScale),
	"timebase_offset":    floatProperty((*Device).TimebaseOffset),
	"displayed_channels": (*Device).DisplayedChannels,
	"running": func(d *Device) ([]string, error) {
		running, err := d.Running()
		if err != nil {
			return nil, err
		}
		return []string{strconv.FormatBool(running)}, nil
	},
}

func floatProperty(get func(*Device) (float64, error)) accessor {
	return func(d *Device) ([]string, error) {
		value, err := get(d)
		if err != nil {
			return nil, err
		}
		return []string{strconv.FormatFloat(value, 'f', -1, 64)}, nil
	}
}

// Property reads one named property. The returned slice holds a single value
// for scalar properties and one element per entry for sequence properties.
func (d *Device) Property(name string) ([]string, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	get, ok := properties[key]
	if !ok {
		return nil, fmt.Errorf("%w: %q (known properties: %s)", ErrUnknownProperty, name, strings.Join(PropertyNames(), ", "))
	}
	return get(d)
}

// PropertyNames lists every registered property in sorted order.
func PropertyNames() []string {
	names := make([]string, 0, len(properties))
	for name := range properties {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
