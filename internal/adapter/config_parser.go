package adapter

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"winnow.dev/pkg/winnow/internal/domain/pygen"
	m "winnow.dev/pkg/winnow/internal/model"
)

// Config bundles the parsed configuration: the name of the function under
// test, one generator tree per parameter with both domains attached, and
// the number of random test cases to generate.
type Config struct {
	FuncName  string
	TypeSpecs []string
	Nodes     []pygen.Node
	NumRandom int
}

// InvalidConfigError reports a syntactically or semantically malformed
// configuration file.
type InvalidConfigError struct {
	Reason string
}

// Error implements error.
func (e *InvalidConfigError) Error() string {
	return "invalid config: " + e.Reason
}

func invalidConfigf(format string, args ...any) error {
	return &InvalidConfigError{Reason: fmt.Sprintf(format, args...)}
}

// ConfigParser abstracts reading and parsing the declarative test
// configuration.
type ConfigParser interface {
	ParseFile(path m.Path) (*Config, error)
	Parse(contents []byte) (*Config, error)
}

// JSONConfigParser parses the JSON configuration format.
//
// The file is a JSON object with fields "fname", "types",
// "exhaustive domain", "random domain" and "num random". Types follow the
// grammar int | float | bool | str(<chars> | list(T | tuple(T | set(T |
// dict(K:V; domains are structurally parallel to the types, each level
// either an integer range "lo~hi" or a literal list "[a, b, c]", with "("
// descending into the child domain and ":" splitting dict key and value
// domains.
type JSONConfigParser struct{}

// NewJSONConfigParser constructs a JSONConfigParser.
func NewJSONConfigParser() *JSONConfigParser {
	return &JSONConfigParser{}
}

// ParseFile reads and parses the configuration file at path.
func (p *JSONConfigParser) ParseFile(path m.Path) (*Config, error) {
	contents, err := os.ReadFile(string(path))
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	return p.Parse(contents)
}

// Parse parses the configuration contents, building one generator tree
// per parameter and attaching its exhaustive and random domains.
func (p *JSONConfigParser) Parse(contents []byte) (*Config, error) {
	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(contents, &envelope); err != nil {
		return nil, invalidConfigf("not a JSON object: %v", err)
	}

	for _, field := range []string{"fname", "types", "exhaustive domain", "random domain", "num random"} {
		if _, ok := envelope[field]; !ok {
			return nil, invalidConfigf("missing %q field", field)
		}
	}

	var funcName string
	if err := json.Unmarshal(envelope["fname"], &funcName); err != nil {
		return nil, invalidConfigf("fname value isn't a string")
	}

	var numRandom int
	if err := json.Unmarshal(envelope["num random"], &numRandom); err != nil {
		return nil, invalidConfigf("num random value isn't an integer")
	}

	types, err := stringArrayField(envelope, "types")
	if err != nil {
		return nil, err
	}

	exDomains, err := stringArrayField(envelope, "exhaustive domain")
	if err != nil {
		return nil, err
	}

	ranDomains, err := stringArrayField(envelope, "random domain")
	if err != nil {
		return nil, err
	}

	nodes := make([]pygen.Node, 0, len(types))

	for _, t := range types {
		node, err := parseType(t)
		if err != nil {
			return nil, err
		}

		nodes = append(nodes, node)
	}

	if err := parseDomains(exDomains, nodes, true); err != nil {
		return nil, err
	}

	if err := parseDomains(ranDomains, nodes, false); err != nil {
		return nil, err
	}

	return &Config{FuncName: funcName, TypeSpecs: types, Nodes: nodes, NumRandom: numRandom}, nil
}

func stringArrayField(envelope map[string]json.RawMessage, field string) ([]string, error) {
	var values []string
	if err := json.Unmarshal(envelope[field], &values); err != nil {
		return nil, invalidConfigf("%s value isn't an array of strings", field)
	}

	return values, nil
}

// parseType parses one parameter type into the root of a generator tree,
// recursing into element and key/value types.
func parseType(t string) (pygen.Node, error) {
	typ := strings.TrimSpace(t)

	switch typ {
	case "int":
		return pygen.NewIntNode(), nil
	case "float":
		return pygen.NewFloatNode(), nil
	case "bool":
		return pygen.NewBoolNode(), nil
	}

	if !strings.HasPrefix(typ, "str") && !isIterableTypeName(typ) && !strings.HasPrefix(typ, "dict") {
		return nil, invalidConfigf("invalid syntax for %q", typ)
	}

	parenIdx := strings.Index(typ, "(")
	if parenIdx == -1 {
		return nil, invalidConfigf("missing parenthesis in %q", typ)
	}

	value := strings.TrimSpace(typ[parenIdx+1:])
	if value == "" {
		if strings.HasPrefix(typ, "str") {
			return nil, invalidConfigf("no char domain for %q", typ)
		}

		return nil, invalidConfigf("no further types specified in %q", typ)
	}

	if strings.HasPrefix(typ, "str") {
		return pygen.NewStringNode(value), nil
	}

	if isIterableTypeName(typ) {
		elem, err := parseType(value)
		if err != nil {
			return nil, err
		}

		switch {
		case strings.HasPrefix(typ, "list"):
			return pygen.NewListNode(elem), nil
		case strings.HasPrefix(typ, "tuple"):
			return pygen.NewTupleNode(elem), nil
		default:
			return pygen.NewSetNode(elem), nil
		}
	}

	colonIdx := strings.Index(value, ":")
	if colonIdx == -1 {
		return nil, invalidConfigf("missing colon in %q", typ)
	}

	key, err := parseType(value[:colonIdx])
	if err != nil {
		return nil, err
	}

	val, err := parseType(value[colonIdx+1:])
	if err != nil {
		return nil, err
	}

	return pygen.NewDictNode(key, val), nil
}

func parseDomains(domains []string, nodes []pygen.Node, exhaustive bool) error {
	if len(domains) != len(nodes) {
		return invalidConfigf("need %d domains but found %d", len(nodes), len(domains))
	}

	for i, domain := range domains {
		if err := parseDomain(domain, nodes[i], exhaustive); err != nil {
			return err
		}
	}

	return nil
}

// parseDomain parses one domain specification and attaches it to node,
// recursing into child domains for containers and dicts.
func parseDomain(domain string, node pygen.Node, exhaustive bool) error {
	parenIdx := strings.Index(domain, "(")
	tildeIdx := strings.Index(domain, "~")
	bracketIdx := strings.Index(domain, "[")

	switch {
	case isIterableNode(node) || isDictNode(node):
		if parenIdx == -1 {
			return invalidConfigf("missing parenthesis in %q", domain)
		}

		if isDictNode(node) && !strings.Contains(domain, ":") {
			return invalidConfigf("missing colon in %q", domain)
		}
	case isSimpleNode(node) || isStringNode(node):
		if parenIdx > -1 {
			return invalidConfigf(`"(" unexpected in %q`, domain)
		}

		if strings.Contains(domain, ":") {
			return invalidConfigf(`":" unexpected in %q`, domain)
		}
	}

	if tildeIdx == -1 && bracketIdx == -1 {
		return invalidConfigf(`missing "~" or "[" at %q`, domain)
	}

	if tildeIdx > -1 && bracketIdx > -1 {
		return invalidConfigf(`improper syntax for "~" and "[" at %q`, domain)
	}

	var (
		domainRange []float64
		isFloat     bool
		err         error
	)

	if tildeIdx > -1 {
		domainRange, isFloat, err = parseTildeNotation(domain, tildeIdx, node, exhaustive)
	} else {
		domainRange, isFloat, err = parseBracketNotation(domain, bracketIdx, node, exhaustive)
	}

	if err != nil {
		return err
	}

	if len(domainRange) == 0 {
		return nil
	}

	if err := validateDomainRange(domainRange, isFloat, node); err != nil {
		return invalidConfigf("domain range %q is invalid: %v", domain, err)
	}

	if exhaustive {
		node.SetExDomain(domainRange)
	} else {
		node.SetRanDomain(domainRange)
	}

	return nil
}

// parseTildeNotation parses an inclusive integer range "lo~hi", descending
// into child domains when the specification carries them.
func parseTildeNotation(domain string, tildeIdx int, node pygen.Node, exhaustive bool) ([]float64, bool, error) {
	leftField := strings.TrimSpace(domain[:tildeIdx])

	var rightField string

	if parenIdx := strings.Index(domain, "("); parenIdx > -1 {
		rightField = strings.TrimSpace(domain[tildeIdx+1 : parenIdx])

		if err := parseChildDomains(domain, node, exhaustive); err != nil {
			return nil, false, err
		}
	} else {
		rightField = strings.TrimSpace(domain[tildeIdx+1:])
	}

	lower, err := strconv.Atoi(leftField)
	if err != nil {
		return nil, false, invalidConfigf("%q in %q is not an int", leftField, domain)
	}

	upper, err := strconv.Atoi(rightField)
	if err != nil {
		return nil, false, invalidConfigf("%q in %q is not an int", rightField, domain)
	}

	if lower > upper {
		return nil, false, invalidConfigf("lower bound %d exceeds upper bound %d in %q", lower, upper, domain)
	}

	nums := make([]float64, 0, upper-lower+1)
	for i := lower; i <= upper; i++ {
		nums = append(nums, float64(i))
	}

	return nums, false, nil
}

// parseBracketNotation parses a literal list "[a, b, c]", deduplicating
// entries and descending into child domains when present.
func parseBracketNotation(domain string, bracketIdx int, node pygen.Node, exhaustive bool) ([]float64, bool, error) {
	closeIdx := strings.Index(domain, "]")
	if closeIdx == -1 {
		return nil, false, invalidConfigf("missing ] in %q", domain)
	}

	if strings.Contains(domain, "(") {
		if err := parseChildDomains(domain, node, exhaustive); err != nil {
			return nil, false, err
		}
	}

	return parseNumberList(strings.Split(domain[bracketIdx+1:closeIdx], ","))
}

// parseChildDomains recurses into the portion of the domain after "(",
// splitting it at ":" for dict key/value children.
func parseChildDomains(domain string, node pygen.Node, exhaustive bool) error {
	inner := strings.TrimSpace(domain[strings.Index(domain, "(")+1:])

	if isIterableNode(node) {
		return parseDomain(inner, node.Left(), exhaustive)
	}

	if isDictNode(node) {
		colonIdx := strings.Index(inner, ":")
		if colonIdx == -1 {
			return invalidConfigf("missing colon in %q", domain)
		}

		if err := parseDomain(strings.TrimSpace(inner[:colonIdx]), node.Left(), exhaustive); err != nil {
			return err
		}

		return parseDomain(strings.TrimSpace(inner[colonIdx+1:]), node.Right(), exhaustive)
	}

	return nil
}

// parseNumberList parses the bracket entries. The first entry fixes the
// numeric type: once an int, every later entry must be an int; floats
// likewise. Duplicates collapse, preserving first-occurrence order.
func parseNumberList(parts []string) ([]float64, bool, error) {
	seen := make(map[float64]struct{}, len(parts))
	nums := make([]float64, 0, len(parts))

	var isInt, isFloat bool

	for _, part := range parts {
		s := strings.TrimSpace(part)

		switch {
		case !isInt && !isFloat:
			if i, err := strconv.Atoi(s); err == nil {
				isInt = true

				nums, seen = appendUnique(nums, seen, float64(i))

				continue
			}

			f, err := strconv.ParseFloat(s, 64)
			if err != nil {
				return nil, false, invalidConfigf("domain range %v doesn't contain all numbers", parts)
			}

			isFloat = true

			nums, seen = appendUnique(nums, seen, f)
		case isInt:
			i, err := strconv.Atoi(s)
			if err != nil {
				return nil, false, invalidConfigf("%q is not a valid int in %v", s, parts)
			}

			nums, seen = appendUnique(nums, seen, float64(i))
		default:
			f, err := strconv.ParseFloat(s, 64)
			if err != nil {
				return nil, false, invalidConfigf("%q is not a valid float in %v", s, parts)
			}

			nums, seen = appendUnique(nums, seen, f)
		}
	}

	return nums, isFloat, nil
}

func appendUnique(nums []float64, seen map[float64]struct{}, v float64) ([]float64, map[float64]struct{}) {
	if _, ok := seen[v]; ok {
		return nums, seen
	}

	seen[v] = struct{}{}

	return append(nums, v), seen
}

// validateDomainRange enforces the per-node domain limits: bools only 0
// and 1, decimals only for floats, negatives only for ints and floats.
func validateDomainRange(domainRange []float64, isFloat bool, node pygen.Node) error {
	if isFloat && !isFloatNode(node) {
		return fmt.Errorf("decimals are only valid for float parameters")
	}

	if _, ok := node.(*pygen.BoolNode); ok {
		for _, v := range domainRange {
			if int(v) != 0 && int(v) != 1 {
				return fmt.Errorf("bool domains may only contain 0 and 1")
			}
		}

		return nil
	}

	if !isSimpleNode(node) {
		for _, v := range domainRange {
			if v < 0 {
				return fmt.Errorf("negative sizes are not valid")
			}
		}
	}

	return nil
}

func isSimpleNode(node pygen.Node) bool {
	switch node.(type) {
	case *pygen.IntNode, *pygen.FloatNode, *pygen.BoolNode:
		return true
	default:
		return false
	}
}

func isIterableNode(node pygen.Node) bool {
	switch node.(type) {
	case *pygen.ListNode, *pygen.TupleNode, *pygen.SetNode:
		return true
	default:
		return false
	}
}

func isDictNode(node pygen.Node) bool {
	_, ok := node.(*pygen.DictNode)
	return ok
}

func isStringNode(node pygen.Node) bool {
	_, ok := node.(*pygen.StringNode)
	return ok
}

func isFloatNode(node pygen.Node) bool {
	_, ok := node.(*pygen.FloatNode)
	return ok
}

func isIterableTypeName(t string) bool {
	return strings.HasPrefix(t, "list") || strings.HasPrefix(t, "tuple") || strings.HasPrefix(t, "set")
}
