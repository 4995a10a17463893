package diagram

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/strategos/pkg/errors"
)

func TestRead(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantNodes int
		wantEdges int
		wantErr   bool
	}{
		{
			name: "Valid",
			input: `{
				"name": "flow",
				"nodes": {"A": {"template_name": "circle"}, "B": {"size": 20}},
				"edges": {"a-b": {"source": "A", "target": "B"}}
			}`,
			wantNodes: 2,
			wantEdges: 1,
		},
		{
			name:      "Empty",
			input:     `{"nodes": {}, "edges": {}}`,
			wantNodes: 0,
			wantEdges: 0,
		},
		{
			name:    "Invalid",
			input:   `{invalid json}`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := Read(strings.NewReader(tt.input))
			if tt.wantErr {
				if !errors.Is(err, errors.ErrCodeInvalidFormat) {
					t.Fatalf("Read error = %v, want %s", err, errors.ErrCodeInvalidFormat)
				}
				return
			}
			if err != nil {
				t.Fatalf("Read: %v", err)
			}
			if got := d.NodeCount(); got != tt.wantNodes {
				t.Errorf("nodes = %d, want %d", got, tt.wantNodes)
			}
			if got := d.EdgeCount(); got != tt.wantEdges {
				t.Errorf("edges = %d, want %d", got, tt.wantEdges)
			}
		})
	}
}

func TestWrite(t *testing.T) {
	d := New("d1")
	_ = d.AddNode(Node{Name: "A"})

	var buf bytes.Buffer
	if err := Write(d, &buf); err != nil {
		t.Fatalf("Write: %v", err)
	}

	var s Spec
	if err := json.Unmarshal(buf.Bytes(), &s); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if s.ID != "d1" || len(s.Nodes) != 1 {
		t.Errorf("decoded spec = %+v", s)
	}
	if !strings.Contains(buf.String(), `"x": null`) {
		t.Errorf("unplaced node should serialize a null position:\n%s", buf.String())
	}
}

func TestFileRoundTrip(t *testing.T) {
	d := New("d1")
	_ = d.AddNode(Node{Name: "A"})
	_ = d.AddNode(Node{Name: "B"})
	_ = d.AddEdge(Edge{Name: "a-b", Source: "A", Target: "B"})

	path := filepath.Join(t.TempDir(), "diagram.json")
	if err := WriteFile(d, path); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	got, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if got.NodeCount() != 2 || got.EdgeCount() != 1 {
		t.Errorf("read %d nodes, %d edges", got.NodeCount(), got.EdgeCount())
	}
}

func TestReadFileNotFound(t *testing.T) {
	if _, err := ReadFile(filepath.Join(os.TempDir(), "does-not-exist.json")); err == nil {
		t.Error("expected error for nonexistent file")
	}
}
