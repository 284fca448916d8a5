// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package catalog holds the fixed reference data the dashboard is seeded with.

# Metric Types

The five environmental layers are a closed set:

	heat, air, flood, green, waste

Each type maps to a MetricInfo entry (title, icon, colour token). Unknown
type names are rejected when the seed is parsed, never at render time:

	t, err := catalog.ParseMetricType("heat")
	info := t.Info()

# Seed Data

The seed document is embedded in the binary (seed.yaml) and parsed once at
startup:

	seed, err := catalog.Load()

It carries the pulse metrics, map layers, citizen reports with their
initial engagement, missions, proposals and the impact tracker data.

# Wellbeing Score

Scores are clamped to 0..100 and banded:

	>= 80  Excellent
	>= 60  Good
	>= 40  Fair
	>= 20  Needs Attention
	else   Critical
*/
package catalog
