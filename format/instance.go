// Package format implements the two textual instance formats and the
// solution output format from spec.md §6. Parsing and serialization are
// kept out of the CORE packages entirely (instance/feasibility/construct/
// lns/ages/ils never read or write text) — format is a thin translation
// layer between bytes and instance.Spec / solution.Solution, grounded on
// the "parser is external to the core" boundary spec.md §6 draws.
package format

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/katalvlaran/pdptw/instance"
)

// Kind names a detected instance format.
type Kind int

const (
	// KindA is the keyword-based format (NAME:/SIZE:/CAPACITY:/NODES/EDGES).
	KindA Kind = iota
	// KindB is the space-separated format (header line, then per-node rows).
	KindB
)

var (
	// ErrUnknownFormat is returned when the first line matches neither
	// format's shape.
	ErrUnknownFormat = errors.New("format: could not detect instance format")
	// ErrMalformedLine is returned when a data line has the wrong field count
	// or an unparsable numeric field.
	ErrMalformedLine = errors.New("format: malformed line")
)

// Detect inspects the first non-blank line of data per spec.md §6: three
// whitespace-separated integers means Format-B, a line containing "SIZE:"
// means Format-A.
func Detect(data []byte) (Kind, error) {
	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if strings.Contains(line, "SIZE:") {
			return KindA, nil
		}
		fields := strings.Fields(line)
		if len(fields) == 3 {
			if _, err := strconv.Atoi(fields[0]); err == nil {
				return KindB, nil
			}
		}
		return 0, ErrUnknownFormat
	}
	return 0, ErrUnknownFormat
}

// ParseInstance detects the format, parses data into an instance.Spec, and
// builds the Instance via the matching constructor: instance.Build for the
// explicit-matrix Format-A, instance.BuildFromEuclidean for Format-B.
func ParseInstance(data []byte) (*instance.Instance, error) {
	kind, err := Detect(data)
	if err != nil {
		return nil, err
	}
	if kind == KindA {
		spec, err := parseKindA(data)
		if err != nil {
			return nil, err
		}
		return instance.Build(spec)
	}
	spec, err := parseKindB(data)
	if err != nil {
		return nil, err
	}
	return instance.BuildFromEuclidean(spec)
}

// parseKindA reads NAME:/SIZE:/CAPACITY: headers, a NODES section (id x y
// demand ready due service), and an EDGES section (n rows of n integers).
// Pairing is not carried explicitly by this format; by convention nodes are
// listed in consecutive (pickup, delivery) order after the depot, which
// parseKindA verifies via demand sign (pickup demand > 0, delivery < 0).
func parseKindA(data []byte) (instance.Spec, error) {
	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	size, capacity := -1, -1
	var nodeLines [][]string
	var edgeLines [][]string
	section := ""

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		switch {
		case strings.HasPrefix(line, "NAME:"):
			continue
		case strings.HasPrefix(line, "SIZE:"):
			v, err := strconv.Atoi(strings.TrimSpace(strings.TrimPrefix(line, "SIZE:")))
			if err != nil {
				return instance.Spec{}, fmt.Errorf("%w: SIZE line", ErrMalformedLine)
			}
			size = v
		case strings.HasPrefix(line, "CAPACITY:"):
			v, err := strconv.Atoi(strings.TrimSpace(strings.TrimPrefix(line, "CAPACITY:")))
			if err != nil {
				return instance.Spec{}, fmt.Errorf("%w: CAPACITY line", ErrMalformedLine)
			}
			capacity = v
		case line == "NODES":
			section = "NODES"
		case line == "EDGES":
			section = "EDGES"
		default:
			fields := strings.Fields(line)
			switch section {
			case "NODES":
				nodeLines = append(nodeLines, fields)
			case "EDGES":
				edgeLines = append(edgeLines, fields)
			}
		}
	}
	if size <= 0 || capacity < 0 || len(nodeLines) != size || len(edgeLines) != size {
		return instance.Spec{}, fmt.Errorf("%w: header/section size mismatch", ErrMalformedLine)
	}

	x := make([]float64, size)
	y := make([]float64, size)
	demand := make([]int, size)
	ready := make([]int, size)
	due := make([]int, size)
	service := make([]int, size)

	for _, f := range nodeLines {
		if len(f) != 7 {
			return instance.Spec{}, fmt.Errorf("%w: NODES row %v", ErrMalformedLine, f)
		}
		id, err := strconv.Atoi(f[0])
		if err != nil || id < 0 || id >= size {
			return instance.Spec{}, fmt.Errorf("%w: NODES id", ErrMalformedLine)
		}
		x[id] = parseFloat(f[1])
		y[id] = parseFloat(f[2])
		demand[id] = parseInt(f[3])
		ready[id] = parseInt(f[4])
		due[id] = parseInt(f[5])
		service[id] = parseInt(f[6])
	}

	dist := make([][]int, size)
	for i, row := range edgeLines {
		if len(row) != size {
			return instance.Spec{}, fmt.Errorf("%w: EDGES row width", ErrMalformedLine)
		}
		dist[i] = make([]int, size)
		for j, v := range row {
			dist[i][j] = parseInt(v)
		}
	}

	pairs, err := pairsByAlternation(demand)
	if err != nil {
		return instance.Spec{}, err
	}

	return instance.Spec{
		Capacity: capacity,
		X:        x, Y: y,
		Demand: demand, Ready: ready, Due: due, Service: service,
		Pairs: pairs,
		Dist:  dist,
	}, nil
}

// parseKindB reads the header line (n_customers capacity speed) followed by
// one row per node: id x y demand ready due service pickup_index
// delivery_index. A node with pickup_index==0 and delivery_index!=0 is a
// pickup paired with that delivery id; a node with delivery_index==0 and
// pickup_index!=0 is the corresponding delivery. The depot has both 0.
func parseKindB(data []byte) (instance.Spec, error) {
	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	var headerFields []string
	var rows [][]string
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if headerFields == nil {
			headerFields = strings.Fields(line)
			continue
		}
		rows = append(rows, strings.Fields(line))
	}
	if len(headerFields) != 3 {
		return instance.Spec{}, fmt.Errorf("%w: header", ErrMalformedLine)
	}
	nCustomers, err := strconv.Atoi(headerFields[0])
	if err != nil {
		return instance.Spec{}, fmt.Errorf("%w: n_customers", ErrMalformedLine)
	}
	capacity, err := strconv.Atoi(headerFields[1])
	if err != nil {
		return instance.Spec{}, fmt.Errorf("%w: capacity", ErrMalformedLine)
	}
	speed := parseFloat(headerFields[2])

	size := nCustomers + 1 // depot + customers
	if len(rows) != size {
		return instance.Spec{}, fmt.Errorf("%w: row count vs n_customers", ErrMalformedLine)
	}

	x := make([]float64, size)
	y := make([]float64, size)
	demand := make([]int, size)
	ready := make([]int, size)
	due := make([]int, size)
	service := make([]int, size)
	pickupIdx := make([]int, size)
	deliveryIdx := make([]int, size)

	for _, f := range rows {
		if len(f) != 9 {
			return instance.Spec{}, fmt.Errorf("%w: node row %v", ErrMalformedLine, f)
		}
		id, err := strconv.Atoi(f[0])
		if err != nil || id < 0 || id >= size {
			return instance.Spec{}, fmt.Errorf("%w: node id", ErrMalformedLine)
		}
		x[id] = parseFloat(f[1])
		y[id] = parseFloat(f[2])
		demand[id] = parseInt(f[3])
		ready[id] = parseInt(f[4])
		due[id] = parseInt(f[5])
		service[id] = parseInt(f[6])
		pickupIdx[id] = parseInt(f[7])
		deliveryIdx[id] = parseInt(f[8])
	}

	var pairs []instance.Pair
	for id := 1; id < size; id++ {
		if pickupIdx[id] == 0 && deliveryIdx[id] != 0 {
			pairs = append(pairs, instance.Pair{Pickup: id, Delivery: deliveryIdx[id]})
		}
	}

	return instance.Spec{
		Capacity: capacity,
		X:        x, Y: y,
		Demand: demand, Ready: ready, Due: due, Service: service,
		Pairs: pairs,
		Speed: speed,
	}, nil
}

// pairsByAlternation assigns pairs to Format-A instances, which carry no
// explicit pickup/delivery indices: nodes after the depot are expected in
// consecutive (positive-demand pickup, negative-demand delivery) order.
func pairsByAlternation(demand []int) ([]instance.Pair, error) {
	var pairs []instance.Pair
	for i := 1; i < len(demand); i += 2 {
		if i+1 >= len(demand) {
			return nil, fmt.Errorf("%w: odd non-depot node count", ErrMalformedLine)
		}
		if demand[i] <= 0 || demand[i+1] >= 0 {
			return nil, fmt.Errorf("%w: expected pickup/delivery demand alternation at node %d", ErrMalformedLine, i)
		}
		pairs = append(pairs, instance.Pair{Pickup: i, Delivery: i + 1})
	}
	return pairs, nil
}

func parseFloat(s string) float64 {
	v, _ := strconv.ParseFloat(s, 64)
	return v
}

func parseInt(s string) int {
	v, _ := strconv.Atoi(s)
	return v
}
