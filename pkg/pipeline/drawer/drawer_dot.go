package drawer

import (
	"fmt"
	"io"
	"sort"
	"text/template"
	"time"

	"github.com/dominikbraun/graph"
	"github.com/pkg/errors"
	"gopkg.in/go-playground/colors.v1" //nolint

	"github.com/askiada/go-derive/pkg/pipeline/measure"
	"github.com/askiada/go-derive/pkg/pipeline/model"
)

// DOTDrawer renders the pipeline graph in the DOT language.
type DOTDrawer struct {
	graph   graph.Graph[string, string]
	options []Option
	// parents keeps the incoming step of each step, a pipeline being a chain.
	parents map[string]string
}

// Option customises the DOT description of the graph.
type Option func(*description)

// NewDOTDrawer creates a new DOT drawer.
func NewDOTDrawer(opts ...Option) *DOTDrawer {
	return &DOTDrawer{
		graph:   graph.New(graph.StringHash, graph.Directed()),
		parents: make(map[string]string),
		options: opts,
	}
}

// AddStep adds a step to the pipeline graph.
func (d *DOTDrawer) AddStep(name string) error {
	err := d.graph.AddVertex(name, graph.VertexAttribute("shape", "box"))
	if err != nil {
		return errors.Wrapf(err, "unable to add vertex %s", name)
	}

	return nil
}

// AddLink adds a link between parent and children steps.
func (d *DOTDrawer) AddLink(parentName, childrenName string) error {
	err := d.graph.AddEdge(parentName, childrenName)
	if err != nil {
		return errors.Wrapf(err, "unable to add edge from %s to %s", parentName, childrenName)
	}

	d.parents[childrenName] = parentName

	return nil
}

// Draw writes the DOT description of the graph to wrt.
func (d *DOTDrawer) Draw(wrt io.Writer) error {
	err := dot(d.graph, wrt, d.options...)
	if err != nil {
		return errors.Wrap(err, "unable to draw dot graph")
	}

	return nil
}

const maxRGB = 240

// AddMeasure labels every measured step with its average duration and colours the
// link leading to it from blue (fastest) to red (slowest).
func (d *DOTDrawer) AddMeasure(msr measure.Measure) error {
	avgs := make(map[string]time.Duration)
	minValue, maxValue := time.Duration(-1), time.Duration(0)

	for name, mt := range msr.AllMetrics() {
		if _, ok := d.parents[name]; !ok {
			continue
		}

		avg := mt.AVGDuration()
		if name == model.EndStep.Name() {
			err := d.setTotal(name, avg)
			if err != nil {
				return err
			}

			continue
		}

		avgs[name] = avg

		if minValue < 0 || avg < minValue {
			minValue = avg
		}

		if avg > maxValue {
			maxValue = avg
		}
	}

	for name, avg := range avgs {
		fraction := 1.0
		if maxValue > minValue {
			fraction = float64(avg-minValue) / float64(maxValue-minValue)
		}

		red := maxRGB * fraction
		blue := maxRGB - red

		colour, err := colors.RGB(uint8(red), 0, uint8(blue)) //nolint
		if err != nil {
			return errors.Wrap(err, "unable to get colour")
		}

		err = d.updateMetric(name, avg, msr.GetMetric(name), colour.ToHEX().String())
		if err != nil {
			return err
		}
	}

	return nil
}

func (d *DOTDrawer) setTotal(name string, avg time.Duration) error {
	_, properties, err := d.graph.VertexWithProperties(name)
	if err != nil {
		return errors.Wrapf(err, "unable to get vertex %s properties", name)
	}

	properties.Attributes["xlabel"] = "total: " + avg.String()

	return nil
}

func (d *DOTDrawer) updateMetric(name string, avg time.Duration, mt measure.Metric, colour string) error {
	_, properties, err := d.graph.VertexWithProperties(name)
	if err != nil {
		return errors.Wrapf(err, "unable to get vertex %s properties", name)
	}

	label := avg.String()
	if mt.Failures() > 0 {
		label += fmt.Sprintf(", failures: %d", mt.Failures())
	}

	properties.Attributes["xlabel"] = label

	err = d.graph.UpdateEdge(d.parents[name], name,
		graph.EdgeAttribute("label", avg.String()),
		graph.EdgeAttribute("fontcolor", "blue"),
		graph.EdgeAttribute("color", colour),
	)
	if err != nil {
		return errors.Wrapf(err, "unable to update edge to %s", name)
	}

	return nil
}

//nolint:lll //this is a template
const dotTemplate = `strict {{.GraphType}} {
	{{range $k, $v := .Attributes}}
		{{$k}}="{{$v}}";
	{{end}}
	{{range $s := .Statements}}
		"{{.Source}}" {{if .Target}}{{$.EdgeOperator}} "{{.Target}}" [ {{range $k, $v := .EdgeAttributes}}{{$k}}="{{$v}}", {{end}} weight={{.EdgeWeight}} ]{{else}}[ {{range $k, $v := .HTMLAttributes}}{{$k}}={{$v}}, {{end}} {{range $k, $v := .SourceAttributes}}{{$k}}="{{$v}}", {{end}} weight={{.SourceWeight}} ]{{end}};
	{{end}}
	}
	`

type description struct {
	GraphType    string
	Attributes   map[string]string
	EdgeOperator string
	Statements   []statement
}

type statement struct {
	Source           interface{}
	Target           interface{}
	SourceAttributes map[string]string
	HTMLAttributes   map[string]string
	EdgeAttributes   map[string]string
	SourceWeight     int
	EdgeWeight       int
}

func dot[T any](g graph.Graph[string, T], wrt io.Writer, options ...Option) error {
	desc, err := generateDOT(g, options...)
	if err != nil {
		return fmt.Errorf("failed to generate DOT description: %w", err)
	}

	return renderDOT(wrt, desc)
}

// GraphAttribute sets a graph level attribute, such as label or rankdir (LR by
// default).
func GraphAttribute(key, value string) Option {
	return func(d *description) {
		d.Attributes[key] = value
	}
}

func generateDOT[T any](gra graph.Graph[string, T], options ...Option) (description, error) {
	desc := description{
		GraphType:    "graph",
		Attributes:   map[string]string{"rankdir": "LR"},
		EdgeOperator: "--",
		Statements:   make([]statement, 0),
	}

	for _, option := range options {
		option(&desc)
	}

	if gra.Traits().IsDirected {
		desc.GraphType = "digraph"
		desc.EdgeOperator = "->"
	}

	adjacencyMap, err := gra.AdjacencyMap()
	if err != nil {
		return desc, errors.Wrap(err, "unable to get adjacency map")
	}

	vertices := make([]string, 0, len(adjacencyMap))
	for vertex := range adjacencyMap {
		vertices = append(vertices, vertex)
	}

	sort.Strings(vertices)

	for _, vertex := range vertices {
		_, sourceProperties, err := gra.VertexWithProperties(vertex)
		if err != nil {
			return desc, errors.Wrap(err, "unable to get vertex properties")
		}

		htmlAttributes := make(map[string]string)
		sourceAttributes := make(map[string]string, len(sourceProperties.Attributes))

		for k, v := range sourceProperties.Attributes {
			if k == "xlabel" {
				htmlAttributes["label"] = fmt.Sprintf(`<%+v <BR /> <FONT POINT-SIZE="12">%s</FONT>>`, vertex, v)

				continue
			}

			sourceAttributes[k] = v
		}

		desc.Statements = append(desc.Statements, statement{
			Source:           vertex,
			SourceWeight:     sourceProperties.Weight,
			SourceAttributes: sourceAttributes,
			HTMLAttributes:   htmlAttributes,
		})

		for adjacency, edge := range adjacencyMap[vertex] {
			desc.Statements = append(desc.Statements, statement{
				Source:         vertex,
				Target:         adjacency,
				EdgeWeight:     edge.Properties.Weight,
				EdgeAttributes: edge.Properties.Attributes,
			})
		}
	}

	return desc, nil
}

func renderDOT(wrt io.Writer, desc description) error {
	tpl, err := template.New("dotTemplate").Parse(dotTemplate)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}

	err = tpl.Execute(wrt, desc)
	if err != nil {
		return errors.Wrap(err, "unable to execute template")
	}

	return nil
}

var _ Drawer = (*DOTDrawer)(nil)
