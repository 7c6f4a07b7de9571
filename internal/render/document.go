package render

import (
	"encoding/json"
	"fmt"

	"github.com/vmihailenco/msgpack/v5"
)

// DocumentMode selects which UI surface a document is for. The form mode
// marks nodes editable for two-way binding; the designer mode marks which
// nodes may be selected, dragged and resized.
type DocumentMode string

const (
	ModeForm     DocumentMode = "form"
	ModeDesigner DocumentMode = "designer"
)

// DocumentNode wraps a resolved node with the per-surface interaction flags.
type DocumentNode struct {
	Node
	Editable   bool `json:"editable,omitempty" msgpack:"editable,omitempty"`
	Selectable bool `json:"selectable,omitempty" msgpack:"selectable,omitempty"`
}

// Document is the payload the thin DOM frontends consume: resolved nodes
// only, no layout/value resolution logic client-side.
type Document struct {
	Mode       DocumentMode   `json:"mode" msgpack:"mode"`
	PageSize   string         `json:"pageSize" msgpack:"pageSize"`
	PageWidth  int            `json:"pageWidth" msgpack:"pageWidth"`
	PageHeight int            `json:"pageHeight" msgpack:"pageHeight"`
	Nodes      []DocumentNode `json:"nodes" msgpack:"nodes"`
}

// BuildDocument projects a render tree into a surface document.
func BuildDocument(tree *Tree, mode DocumentMode) *Document {
	doc := &Document{
		Mode:       mode,
		PageSize:   string(tree.PageSize),
		PageWidth:  tree.PageWidth,
		PageHeight: tree.PageHeight,
		Nodes:      make([]DocumentNode, 0, len(tree.Nodes)),
	}

	for _, node := range tree.Nodes {
		dn := DocumentNode{Node: node}
		switch mode {
		case ModeForm:
			switch node.Kind {
			case NodeInput:
				dn.Editable = !node.ReadOnly
			case NodeShape, NodeChoice:
				dn.Editable = true
			}
		case ModeDesigner:
			dn.Selectable = !node.Fixed
		}
		doc.Nodes = append(doc.Nodes, dn)
	}

	return doc
}

// MarshalJSONDocument encodes a document as JSON.
func MarshalJSONDocument(doc *Document) ([]byte, error) {
	data, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("encoding document: %w", err)
	}
	return data, nil
}

// MarshalMsgpackDocument encodes a document as MessagePack, noticeably
// smaller than JSON for trees with many shape nodes.
func MarshalMsgpackDocument(doc *Document) ([]byte, error) {
	data, err := msgpack.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("encoding document: %w", err)
	}
	return data, nil
}
