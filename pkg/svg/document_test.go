package svg

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr error
		want    string
	}{
		{
			name:  "simple icon",
			input: `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 24 24"><path d="M0 0h24v24H0z"/></svg>`,
			want:  `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 24 24"><path d="M0 0h24v24H0z"/></svg>`,
		},
		{
			name:  "xml declaration and comment before root are dropped",
			input: "<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n<!-- exported -->\n<svg viewBox=\"0 0 16 16\"><g><circle cx=\"8\" cy=\"8\" r=\"4\"></circle></g></svg>\n",
			want:  `<svg viewBox="0 0 16 16"><g><circle cx="8" cy="8" r="4"/></g></svg>`,
		},
		{
			name:  "single quoted attribute",
			input: `<svg><text font-family='a "b"'>x</text></svg>`,
			want:  `<svg><text font-family="a &quot;b&quot;">x</text></svg>`,
		},
		{
			name:    "not svg",
			input:   `<html><body/></html>`,
			wantErr: ErrNotSVG,
		},
		{
			name:    "unbalanced",
			input:   `<svg><g></svg>`,
			wantErr: ErrMalformed,
		},
		{
			name:    "unclosed",
			input:   `<svg><g>`,
			wantErr: ErrMalformed,
		},
		{
			name:    "empty",
			input:   ``,
			wantErr: ErrMalformed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := ParseString(tt.input)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, doc.String())
		})
	}
}

func TestDocument_Body(t *testing.T) {
	doc, err := ParseString(`<svg viewBox="0 0 24 24"><path d="M1 1"/><rect width="2" height="2"/></svg>`)
	require.NoError(t, err)

	assert.Equal(t, `<path d="M1 1"/><rect width="2" height="2"/>`, doc.Body())
}

func TestDocument_IconBody(t *testing.T) {
	doc, err := ParseString(`<svg viewBox="0 0 24 24" width="24" fill="none" stroke="currentColor" stroke-width="2" class="x"><path d="M5 12h14"/></svg>`)
	require.NoError(t, err)
	assert.Equal(t, `<g fill="none" stroke="currentColor" stroke-width="2"><path d="M5 12h14"/></g>`, doc.IconBody())

	plain, err := ParseString(`<svg viewBox="0 0 24 24"><path d="M1 1"/></svg>`)
	require.NoError(t, err)
	assert.Equal(t, plain.Body(), plain.IconBody())
}

func TestDocument_ViewBox(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Box
	}{
		{"viewBox", `<svg viewBox="0 -2 24 20"/>`, Box{Top: -2, Width: 24, Height: 20}},
		{"comma separated", `<svg viewBox="1,2,3,4"/>`, Box{Left: 1, Top: 2, Width: 3, Height: 4}},
		{"width and height", `<svg width="32px" height="20"/>`, Box{Width: 32, Height: 20}},
		{"nothing", `<svg/>`, DefaultBox},
		{"broken viewBox falls back", `<svg viewBox="a b" width="10"/>`, Box{Width: 10, Height: 16}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := ParseString(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, doc.ViewBox())
		})
	}
}

func TestDocument_Clone(t *testing.T) {
	doc, err := ParseString(`<svg><path fill="red" d="M1 1"/></svg>`)
	require.NoError(t, err)

	clone := doc.Clone()
	clone.Root.Children[0].SetAttr("fill", "blue")

	assert.Equal(t, `<svg><path fill="red" d="M1 1"/></svg>`, doc.String())
	assert.Equal(t, `<svg><path fill="blue" d="M1 1"/></svg>`, clone.String())
}

func TestNode_Attrs(t *testing.T) {
	n := &Node{Kind: ElementNode, Name: "path"}

	n.SetAttr("fill", "red")
	n.SetAttr("d", "M0 0")
	n.SetAttr("fill", "blue")

	v, ok := n.Attr("fill")
	assert.True(t, ok)
	assert.Equal(t, "blue", v)
	assert.Len(t, n.Attrs, 2)

	n.RemoveAttr("fill")
	_, ok = n.Attr("fill")
	assert.False(t, ok)
	assert.Equal(t, []Attr{{Name: "d", Value: "M0 0"}}, n.Attrs)
}
