package codec

import (
	"github.com/structwire/structwire/schema"
)

// thermostatDefinitions mirrors the thermostat command set used across the
// example schemas: a one-byte command group dispatching to structures that
// exercise ints, enums, strings, and a bit field.
func thermostatDefinitions() schema.RawDefinitions {
	return schema.RawDefinitions{
		"file": map[string]any{
			"brief":       "Command set for a thermostat",
			"description": "Provides basic debug commands for a thermostat.",
		},
		"commands": map[string]any{
			"description":  "Debug commands for thermostat",
			"display_name": "Thermostat command",
			"type":         "group",
			"size":         1,
		},
		"cmd_reset": map[string]any{
			"description":  "Request a software reset",
			"display_name": "reset request",
			"size":         0,
			"type":         "structure",
			"groups": map[string]any{
				"commands": map[string]any{"value": 1, "name": "reset"},
			},
		},
		"cmd_temperature_set": map[string]any{
			"description":  "Request a change in temperature",
			"display_name": "Request temperature change",
			"size":         3,
			"type":         "structure",
			"members": []any{
				map[string]any{
					"name":        "temperature",
					"size":        2,
					"type":        "int",
					"description": "Desired temperature",
				},
				map[string]any{
					"name":        "units",
					"size":        1,
					"type":        "temperature_units",
					"description": "Selected temperature unit",
				},
			},
			"groups": map[string]any{
				"commands": map[string]any{"value": 2, "name": "temperature_set"},
			},
		},
		"temperature_units": map[string]any{
			"description":  "Units used for temperature",
			"display_name": "Temperature Units",
			"size":         1,
			"type":         "enum",
			"values": []any{
				map[string]any{
					"label":        "c",
					"value":        0,
					"display_name": "C",
					"description":  "Degrees Celsius",
				},
				map[string]any{
					"label":        "f",
					"display_name": "F",
					"description":  "Degrees Fahrenheit",
				},
			},
		},
		"cmd_label_thermostat": map[string]any{
			"description":  "Give the thermostat a name",
			"display_name": "Label thermostat",
			"size":         20,
			"type":         "structure",
			"members": []any{
				map[string]any{
					"name":        "label",
					"size":        20,
					"type":        "str",
					"description": "Name for the thermostat",
				},
			},
			"groups": map[string]any{
				"commands": map[string]any{"value": 3, "name": "label"},
			},
		},
		"cmd_mode_set": map[string]any{
			"description":  "Change thermostat mode",
			"display_name": "Request a change in the thermostat mode",
			"size":         1,
			"type":         "structure",
			"members": []any{
				map[string]any{
					"name":        "mode",
					"size":        1,
					"type":        "thermostat_mode",
					"description": "Desired thermostat mode",
				},
			},
			"groups": map[string]any{
				"commands": map[string]any{"value": 4, "name": "mode_configuration"},
			},
		},
		"thermostat_mode": map[string]any{
			"display_name": "Thermostat Mode",
			"description":  "Mode configuration for thermostat control",
			"type":         "bit_field",
			"size":         1,
			"members": []any{
				map[string]any{
					"name":        "heating_en",
					"start":       0,
					"type":        "uint",
					"description": "Heating is enabled",
				},
				map[string]any{
					"name":        "cooling_en",
					"start":       1,
					"type":        "uint",
					"description": "Cooling is enabled",
				},
				map[string]any{
					"name":        "fan_always_on",
					"start":       2,
					"type":        "fan_state",
					"description": "Fan is always on",
				},
			},
		},
		"fan_state": map[string]any{
			"description":  "Indicates how the fan should be operated",
			"display_name": "Fan state",
			"size":         1,
			"type":         "enum",
			"values": []any{
				map[string]any{
					"label":        "on_during_operation",
					"display_name": "On during operation",
					"description":  "Fan is only on when actively heating or cooling",
				},
				map[string]any{
					"label":        "always_on",
					"display_name": "Always On",
					"description":  "Fan is always on, even when not heating or cooling",
				},
			},
		},
	}
}
