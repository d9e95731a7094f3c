// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package attrs

import (
	"embed"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

//go:embed testdata/*.yaml
var testDataFS embed.FS

// yamlAttr mirrors Attr with yaml tags for the fixtures.
type yamlAttr struct {
	Key           string `yaml:"key"`
	Include       bool   `yaml:"include"`
	OutputKey     string `yaml:"outputKey"`
	TransformSpec string `yaml:"transformSpec"`
}

func toList(in []yamlAttr) AttrList {
	out := AttrList{}
	for _, a := range in {
		out = append(out, Attr(a))
	}
	return out
}

// testSetCase represents a single test case for TestAttrList_Set.
type testSetCase struct {
	Name      string     `yaml:"name"`
	Initial   []yamlAttr `yaml:"initial"`
	Value     string     `yaml:"value"`
	WantLen   int        `yaml:"wantLen"`
	WantAttrs []yamlAttr `yaml:"wantAttrs"`
	WantErr   bool       `yaml:"wantErr"`
}

// testTransformCase represents a single test case for TestAttr_Transform.
type testTransformCase struct {
	Name          string      `yaml:"name"`
	TransformSpec string      `yaml:"transformSpec"`
	Input         interface{} `yaml:"input"`
	Want          interface{} `yaml:"want"`
}

// testGlobalTransformCase represents a test case for SetGlobalTransformSpec.
type testGlobalTransformCase struct {
	Name      string     `yaml:"name"`
	Initial   []yamlAttr `yaml:"initial"`
	WantSpecs []string   `yaml:"wantSpecs"`
}

// testStringCase represents a test case for AttrList_String.
type testStringCase struct {
	Name     string     `yaml:"name"`
	AttrList []yamlAttr `yaml:"attrList"`
	Want     string     `yaml:"want"`
}

// loadTestData loads test data from embedded YAML files.
func loadTestData(filename string, v any) error {
	data, err := testDataFS.ReadFile("testdata/" + filename)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, v)
}

func TestAttrList_Set(t *testing.T) {
	var tests []testSetCase
	require.NoError(t, loadTestData("set_cases.yaml", &tests))
	require.NotEmpty(t, tests)

	for _, tt := range tests {
		t.Run(tt.Name, func(t *testing.T) {
			a := toList(tt.Initial)
			err := a.Set(tt.Value)

			if tt.WantErr {
				assert.Error(t, err)
				return
			}

			assert.NoError(t, err)
			assert.Len(t, a, tt.WantLen)

			for i, want := range tt.WantAttrs {
				assert.Equal(t, want.Key, a[i].Key, "attr[%d].Key", i)
				assert.Equal(t, want.OutputKey, a[i].OutputKey, "attr[%d].OutputKey", i)
				assert.Equal(t, want.Include, a[i].Include, "attr[%d].Include", i)
				assert.Equal(t, want.TransformSpec, a[i].TransformSpec, "attr[%d].TransformSpec", i)
			}
		})
	}
}

func TestAttrList_SetGlobalTransformSpec(t *testing.T) {
	var tests []testGlobalTransformCase
	require.NoError(t, loadTestData("global_transform_cases.yaml", &tests))

	for _, tt := range tests {
		t.Run(tt.Name, func(t *testing.T) {
			a := toList(tt.Initial)
			a.SetGlobalTransformSpec()

			require.Len(t, a, len(tt.WantSpecs))
			for i, wantSpec := range tt.WantSpecs {
				assert.Equal(t, wantSpec, a[i].TransformSpec, "attr[%d].TransformSpec", i)
			}
		})
	}
}

func TestAttr_Transform(t *testing.T) {
	var tests []testTransformCase
	require.NoError(t, loadTestData("transform_cases.yaml", &tests))

	for _, tt := range tests {
		t.Run(tt.Name, func(t *testing.T) {
			attr := Attr{TransformSpec: tt.TransformSpec}
			assert.Equal(t, tt.Want, attr.Transform(tt.Input))
		})
	}
}

func TestAttrList_String(t *testing.T) {
	var tests []testStringCase
	require.NoError(t, loadTestData("string_cases.yaml", &tests))

	for _, tt := range tests {
		t.Run(tt.Name, func(t *testing.T) {
			a := toList(tt.AttrList)
			assert.Equal(t, tt.Want, a.String())
		})
	}
}

func TestAttrList_IncludedAndLookup(t *testing.T) {
	var a AttrList
	require.NoError(t, a.Set("phase,method:algo,!n"))

	inc := a.Included()
	require.Len(t, inc, 2)
	assert.Equal(t, "phase", inc[0].OutputKey)
	assert.Equal(t, "algo", inc[1].OutputKey)

	assert.Equal(t, "method", a.Lookup("algo"))
	assert.Equal(t, "n", a.Lookup("n"))
	assert.Equal(t, "", a.Lookup("ms"))
}
