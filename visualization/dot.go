package visualization

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/anggasct/gridlight"
)

// DOTGenerator generates Graphviz DOT format representations of road networks
type DOTGenerator struct {
	intersections []gridlight.IntersectionSpec
	options       DOTOptions
}

// DOTOptions configures the DOT generation
type DOTOptions struct {
	ShowCars      bool
	ShowPhases    bool
	ShowExit      bool
	RankDirection string // "TB", "LR", "BT", "RL"
	NodeShape     string
	GoColor       string
	StopColor     string
}

// DefaultDOTOptions returns sensible default options for DOT generation
func DefaultDOTOptions() DOTOptions {
	return DOTOptions{
		ShowCars:      true,
		ShowPhases:    true,
		ShowExit:      true,
		RankDirection: "LR",
		NodeShape:     "box",
		GoColor:       "darkgreen",
		StopColor:     "red",
	}
}

// NewDOTGenerator creates a new DOT generator for the given topology
func NewDOTGenerator(topology gridlight.Topology, options ...DOTOptions) *DOTGenerator {
	opts := DefaultDOTOptions()
	if len(options) > 0 {
		opts = options[0]
	}

	return &DOTGenerator{
		intersections: topology.Intersections,
		options:       opts,
	}
}

// NewSnapshotDOTGenerator creates a DOT generator for a network snapshot
func NewSnapshotDOTGenerator(snapshot []gridlight.Intersection, options ...DOTOptions) *DOTGenerator {
	builder := gridlight.NewTopology()
	for _, in := range snapshot {
		ib := builder.Intersection(in.ID)
		d := in.Directions
		ib.NorthToSouth(d[gridlight.NorthToSouth].Phase, d[gridlight.NorthToSouth].Cars, d[gridlight.NorthToSouth].Destination).
			SouthToNorth(d[gridlight.SouthToNorth].Phase, d[gridlight.SouthToNorth].Cars, d[gridlight.SouthToNorth].Destination).
			EastToWest(d[gridlight.EastToWest].Phase, d[gridlight.EastToWest].Cars, d[gridlight.EastToWest].Destination).
			WestToEast(d[gridlight.WestToEast].Phase, d[gridlight.WestToEast].Cars, d[gridlight.WestToEast].Destination)
	}
	return NewDOTGenerator(builder.Build(), options...)
}

// Generate creates a DOT representation of the network
func (g *DOTGenerator) Generate() (string, error) {
	var dot strings.Builder

	dot.WriteString("digraph Network {\n")
	dot.WriteString(fmt.Sprintf("  rankdir=%s;\n", g.options.RankDirection))
	dot.WriteString(fmt.Sprintf("  node [shape=%s];\n", g.options.NodeShape))
	dot.WriteString("  edge [fontsize=10];\n\n")

	g.generateNodes(&dot)

	if err := g.generateEdges(&dot); err != nil {
		return "", fmt.Errorf("failed to generate edges: %w", err)
	}

	dot.WriteString("}\n")

	return dot.String(), nil
}

func (g *DOTGenerator) generateNodes(dot *strings.Builder) {
	dot.WriteString("  // Intersections\n")
	for _, spec := range g.intersections {
		label := fmt.Sprintf("intersection %d", int(spec.ID))
		if g.options.ShowCars {
			label += fmt.Sprintf("\\n%d cars", specCars(spec))
		}
		dot.WriteString(fmt.Sprintf("  \"%d\" [label=\"%s\"];\n", int(spec.ID), label))
	}

	if g.options.ShowExit {
		dot.WriteString("  \"exit\" [shape=doublecircle, style=filled, fillcolor=lightgrey];\n")
	}
	dot.WriteString("\n")
}

func (g *DOTGenerator) generateEdges(dot *strings.Builder) error {
	dot.WriteString("  // Approaches\n")
	for _, spec := range g.intersections {
		for _, a := range gridlight.Approaches {
			d := spec.Direction(a)
			if d.Phase != gridlight.Stop && d.Phase != gridlight.Go {
				return fmt.Errorf("intersection %d %s: %w", int(spec.ID), a, gridlight.ErrInvalidPhase)
			}
			if d.Destination == gridlight.Exit && !g.options.ShowExit {
				continue
			}

			label := a.String()
			if g.options.ShowCars {
				label += fmt.Sprintf(" (%d)", d.Cars)
			}

			attrs := fmt.Sprintf("label=\"%s\"", label)
			if g.options.ShowPhases {
				color := g.options.StopColor
				style := "dashed"
				if d.Phase == gridlight.Go {
					color = g.options.GoColor
					style = "solid"
				}
				attrs += fmt.Sprintf(", color=%s, style=%s", color, style)
			}

			dot.WriteString(fmt.Sprintf("  \"%d\" -> \"%s\" [%s];\n", int(spec.ID), nodeName(d.Destination), attrs))
		}
	}
	return nil
}

func nodeName(id gridlight.IntersectionID) string {
	if id == gridlight.Exit {
		return "exit"
	}
	return fmt.Sprintf("%d", int(id))
}

func specCars(spec gridlight.IntersectionSpec) int {
	total := 0
	for _, a := range gridlight.Approaches {
		total += spec.Direction(a).Cars
	}
	return total
}

// GenerateToFile writes the DOT representation to a file
func (g *DOTGenerator) GenerateToFile(filename string) error {
	content, err := g.Generate()
	if err != nil {
		return err
	}

	return os.WriteFile(filename, []byte(content), 0644)
}

// GenerateSVG renders the network as SVG by calling Graphviz
func (g *DOTGenerator) GenerateSVG() (string, error) {
	dotContent, err := g.Generate()
	if err != nil {
		return "", err
	}

	cmd := exec.Command("dot", "-Tsvg")
	cmd.Stdin = strings.NewReader(dotContent)

	var out bytes.Buffer
	cmd.Stdout = &out

	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("failed to execute dot command: %w (make sure Graphviz is installed)", err)
	}

	return out.String(), nil
}
