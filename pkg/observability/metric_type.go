package observability

type Label struct {
	Key   string
	Value string
}

// MetricOpt is read once, when the instrument is first created. LabelKeys
// fixes the label schema; later emissions must supply exactly these keys.
type MetricOpt struct {
	Help        string
	Buckets     []float64
	ConstLabels []Label
	LabelKeys   []string
	Unit        string
}
