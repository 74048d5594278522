package ir

// GateMeasure is the reserved gate name marking a measurement record. Every
// other gate name is treated as a unitary operation.
const GateMeasure = "measure"

// QubitDecl declares either a scalar qubit (Size == 0) or a qubit register
// of Size elements addressed as name[0] .. name[Size-1].
type QubitDecl struct {
	Name string `json:"name" yaml:"name"`
	Size int    `json:"size,omitempty" yaml:"size,omitempty"`
}

// Operation is one parsed statement. Qubits holds canonical qubit
// identities in operand order. Bit is the classical target of a measurement
// and empty otherwise. Ordinal disambiguates several statements sharing a
// source line; it is assigned in program order during loading.
type Operation struct {
	Gate    string   `json:"gate" yaml:"gate"`
	Qubits  []string `json:"qubits" yaml:"qubits"`
	Bit     string   `json:"bit,omitempty" yaml:"bit,omitempty"`
	Line    int      `json:"line" yaml:"line"`
	Ordinal int      `json:"ordinal" yaml:"ordinal"`
}

// IsMeasure reports whether the operation is a measurement.
func (o Operation) IsMeasure() bool {
	return o.Gate == GateMeasure
}

// Program is the full IR document: declarations plus the statement list in
// program-text order.
type Program struct {
	Qubits []QubitDecl
	Ops    []Operation
}

// Identities enumerates every declared qubit identity in declaration order,
// expanding registers element by element.
func (p *Program) Identities() []string {
	var ids []string
	for _, d := range p.Qubits {
		if d.Size == 0 {
			ids = append(ids, d.Name)
			continue
		}
		for i := 0; i < d.Size; i++ {
			ids = append(ids, elementIdentity(d.Name, i))
		}
	}
	return ids
}
