package visibility_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-blockfields/pkg/fields"
	"github.com/goliatone/go-blockfields/pkg/visibility"
)

func sampleDocument(t *testing.T) fields.Document {
	t.Helper()
	doc, err := fields.NewBuilder().
		AddToggle("show_button", fields.Options{"value": false}).
		AddLink("button", nil).
		Conditional("show_button", true).
		AddSection("Slides", nil).
		AddRepeater("slides", nil).
		AddSelect("kind", nil).
		AddImage("image", nil).
		Conditional("kind", "image").
		EndRepeater().
		AddRange("columns", nil).
		AddText("gutter", nil).
		Conditional("columns", 2).
		Build()
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	return doc
}

func TestHidden(t *testing.T) {
	doc := sampleDocument(t)

	cases := []struct {
		name   string
		values map[string]any
		want   []string
	}{
		{
			name:   "nothing set",
			values: nil,
			want:   []string{"button", "gutter"},
		},
		{
			name: "conditions met",
			values: map[string]any{
				"show_button": true,
				"columns":     2.0,
				"slides": []any{
					map[string]any{"kind": "image"},
				},
			},
			want: nil,
		},
		{
			name: "per repeater item",
			values: map[string]any{
				"show_button": true,
				"columns":     2,
				"slides": []any{
					map[string]any{"kind": "image"},
					map[string]any{"kind": "video"},
					"not an item",
				},
			},
			want: []string{"slides.1.image"},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := visibility.Hidden(doc, tc.values)
			if err != nil {
				t.Fatalf("hidden: %v", err)
			}
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Fatalf("hidden mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestHidden_CustomEvaluator(t *testing.T) {
	doc := sampleDocument(t)

	var paths []string
	always := visibility.EvaluatorFunc(func(path []string, _ fields.Condition, _ visibility.Context) (bool, error) {
		paths = append(paths, path[len(path)-1])
		return true, nil
	})
	got, err := visibility.Hidden(doc, nil, visibility.WithEvaluator(always))
	if err != nil {
		t.Fatalf("hidden: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected nothing hidden, got %v", got)
	}
	if diff := cmp.Diff([]string{"button", "gutter"}, paths); diff != "" {
		t.Fatalf("evaluated paths mismatch (-want +got):\n%s", diff)
	}

	boom := errors.New("boom")
	failing := visibility.EvaluatorFunc(func([]string, fields.Condition, visibility.Context) (bool, error) {
		return false, boom
	})
	if _, err := visibility.Hidden(doc, nil, visibility.WithEvaluator(failing)); !errors.Is(err, boom) {
		t.Fatalf("expected evaluator error, got %v", err)
	}
}
