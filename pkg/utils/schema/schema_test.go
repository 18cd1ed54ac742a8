package schema

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func Test_Generate(t *testing.T) {
	for _, kind := range Kinds() {
		var buf bytes.Buffer
		if err := Generate(&buf, kind); err != nil {
			t.Fatalf("Generate(%s): %v", kind, err)
		}
		var doc map[string]any
		if err := json.Unmarshal(buf.Bytes(), &doc); err != nil {
			t.Fatalf("Generate(%s) produced invalid JSON: %v", kind, err)
		}
		if _, ok := doc["$schema"]; !ok {
			t.Errorf("Generate(%s) missing $schema", kind)
		}
	}
}

func Test_Generate_ConfigUsesConfigKeys(t *testing.T) {
	var buf bytes.Buffer
	if err := Generate(&buf, KindConfig); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, key := range []string{"respect_gitignore", "min_detect_length", "api_key_env"} {
		if !strings.Contains(out, key) {
			t.Errorf("config schema should contain %q", key)
		}
	}
}

func Test_ParseKind(t *testing.T) {
	if k, err := ParseKind("cicd"); err != nil || k != KindCICD {
		t.Errorf("ParseKind(cicd) = %q, %v", k, err)
	}
	if _, err := ParseKind("tools"); err == nil {
		t.Error("ParseKind(tools) should fail")
	}
}
