package svg

import (
	"encoding/json"
	"encoding/xml"
	"io"
)

type xmlObject struct {
	XMLName      xml.Name `xml:"object"`
	ID           string   `xml:"id,attr"`
	Type         string   `xml:"type,attr"`
	IsFilled     bool     `xml:"isFilled,attr"`
	NodeLocation string   `xml:"nodeLocation,attr"`
}

type xmlLayer struct {
	XMLName xml.Name    `xml:"layer"`
	Name    string      `xml:"name,attr"`
	Objects []xmlObject `xml:"object"`
}

type xmlLayers struct {
	XMLName xml.Name   `xml:"layers"`
	Layers  []xmlLayer `xml:"layer"`
}

// WriteLayerReport writes the layer contents as an XML instruction document
// for downstream tools: per object its id, element type, whether it is
// filled, and its node locations as a JSON array of [x,y] pairs.
func WriteLayerReport(w io.Writer, layers []Layer) error {
	doc := xmlLayers{}
	for _, layer := range layers {
		xl := xmlLayer{Name: layer.Name}
		for _, obj := range layer.Objects {
			nodes := make([][]float64, 0, len(obj.Nodes))
			for _, node := range obj.Nodes {
				nodes = append(nodes, []float64{node.X, node.Y})
			}
			b, err := json.Marshal(nodes)
			if err != nil {
				return err
			}
			xl.Objects = append(xl.Objects, xmlObject{
				ID:           obj.ID,
				Type:         obj.Type,
				IsFilled:     obj.Filled,
				NodeLocation: string(b),
			})
		}
		doc.Layers = append(doc.Layers, xl)
	}

	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return err
	}
	return enc.Close()
}
