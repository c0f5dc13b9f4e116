package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	log "github.com/golang/glog"
	"github.com/schollz/progressbar/v3"
	"gonum.org/v1/gonum/mat"

	"github.com/0h-n0/plsa/corpus"
	"github.com/0h-n0/plsa/model"
)

var (
	input      = flag.String("input_file", "", "input training file, the built-in example is used when empty")
	format     = flag.String("format", "docword", "input format: docword or text")
	stopWords  = flag.String("stop_words", "", "comma separated stop words for text input")
	topicModel = flag.String("model", "plsa", "model type")
	topicNum   = flag.Int("k", 2, "number of topics")
	candidates = flag.String("select_k", "", "comma separated topic numbers to choose from by AIC, overrides -k")
	maxIter    = flag.Int("max_iter", model.DefaultMaxIter, "maximum number of EM iterations")
	epsilon    = flag.Float64("epsilon", model.DefaultEpsilon, "relative log-likelihood change treated as converged")
	seed       = flag.Uint64("seed", 0, "random seed, 0 seeds from the clock")
	topN       = flag.Int("top", 10, "number of top words printed per topic")
	progress   = flag.Bool("progress", false, "show a training progress bar")
)

// the 5x4 document-word matrix used when no input is given
var example = mat.NewDense(5, 4, []float64{
	20, 23, 1, 4,
	25, 19, 3, 0,
	2, 1, 31, 28,
	0, 1, 22, 17,
	1, 0, 18, 24,
})

func main() {
	flag.Parse()
	defer log.Flush()

	// read training data
	counts, vocab, err := loadCounts()
	if err != nil {
		log.Exitf("load %s: %v", *input, err)
	}

	opts := []model.Option{model.WithMaxIter(*maxIter), model.WithEpsilon(*epsilon)}
	if *seed != 0 {
		opts = append(opts, model.WithSeed(*seed))
	}

	if *candidates != "" {
		ks, err := parseInts(*candidates)
		if err != nil {
			log.Exitf("bad -select_k: %v", err)
		}
		best, scores, err := model.SelectByAIC(counts, ks, opts...)
		if err != nil {
			log.Exitf("select topics: %v", err)
		}
		for i, k := range ks {
			fmt.Printf("topics %d\taic %f\n", k, scores[i])
		}
		report(best, vocab)
		return
	}

	// init model
	ctor, err := model.GetModel(*topicModel)
	if err != nil {
		log.Exit(err)
	}
	var bar *progressbar.ProgressBar
	if *progress {
		bar = progressbar.NewOptions(*maxIter,
			progressbar.OptionSetDescription("training"),
			progressbar.OptionSetWriter(os.Stderr),
			progressbar.OptionShowCount(),
			progressbar.OptionClearOnFinish())
		opts = append(opts, model.WithIterationHook(func(it model.Iteration) {
			bar.Describe(fmt.Sprintf("llh %.4f", it.LogLikelihood))
			bar.Add(1)
		}))
	}
	m, err := ctor(counts, *topicNum, opts...)
	if err != nil {
		log.Exitf("init model: %v", err)
	}

	state, err := m.Train()
	if bar != nil {
		bar.Finish()
	}
	if err != nil {
		log.Exitf("train: %v", err)
	}
	fmt.Printf("state %s\n", state)

	p, ok := m.(*model.PLSA)
	if !ok {
		return
	}
	report(p, vocab)
}

func loadCounts() (*mat.Dense, []string, error) {
	if *input == "" {
		return mat.DenseCopyOf(example), nil, nil
	}

	data := &corpus.Corpus{}
	switch *format {
	case "docword":
		if err := data.Load(*input); err != nil {
			return nil, nil, err
		}
	case "text":
		var stops []string
		if *stopWords != "" {
			stops = strings.Split(*stopWords, ",")
		}
		if err := data.LoadText(*input, stops...); err != nil {
			return nil, nil, err
		}
	default:
		return nil, nil, fmt.Errorf("unknown format %q", *format)
	}
	counts, err := data.Matrix()
	if err != nil {
		return nil, nil, err
	}
	return counts, data.Vocab, nil
}

func report(m *model.PLSA, vocab []string) {
	llh, err := m.LogLikelihood()
	if err != nil {
		log.Exitf("log-likelihood: %v", err)
	}
	aic, err := m.AIC()
	if err != nil {
		log.Exitf("aic: %v", err)
	}
	fmt.Printf("topics %d\titerations %d\tlikelihood %f\taic %f\n",
		m.TopicNum(), m.Iterations(), llh, aic)
	fmt.Printf("pz %v\n", m.Pz())
	fmt.Printf("pw_z\n%v\n", mat.Formatted(m.PwZ(), mat.Squeeze()))
	fmt.Printf("pd_z\n%v\n", mat.Formatted(m.PdZ(), mat.Squeeze()))

	for k := 0; k < m.TopicNum(); k += 1 {
		words := make([]string, 0, *topN)
		for _, w := range m.TopWords(k, *topN) {
			if w < len(vocab) {
				words = append(words, vocab[w])
			} else {
				words = append(words, strconv.Itoa(w))
			}
		}
		fmt.Printf("topic %d: %s\n", k, strings.Join(words, " "))
	}
}

func parseInts(s string) ([]int, error) {
	var out []int
	for _, f := range strings.Split(s, ",") {
		n, err := strconv.Atoi(strings.TrimSpace(f))
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, nil
}
