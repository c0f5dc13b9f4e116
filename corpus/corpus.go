package corpus

import (
	"bufio"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	log "github.com/golang/glog"
	"github.com/james-bowman/nlp"
	"gonum.org/v1/gonum/mat"
)

type Corpus struct {
	VocabSize uint32
	DocNum    uint32
	Docs      map[uint32][]*WordCount
	// Vocab maps word ids to terms; empty for docword input
	Vocab []string
}

type WordCount struct {
	WordId uint32
	Count  uint32
}

// load training data from file, the file format should be like:
// [docId wordId:wordCount wordId:wordCount ... wordId:wordCount]
// malformed word counts are skipped, unparsable ids fail the load
func (this *Corpus) Load(fn string) error {
	f, err := os.Open(fn)
	if err != nil {
		return err
	}
	defer f.Close()

	if this.Docs == nil {
		this.Docs = make(map[uint32][]*WordCount)
	}
	vocabMaxId := uint32(0)
	if this.VocabSize > 0 {
		vocabMaxId = this.VocabSize - 1
	}

	lineIdx := 0
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		lineIdx += 1
		doc := strings.TrimSpace(scanner.Text())
		vals := strings.Fields(doc)
		if len(vals) < 2 {
			log.Warningf("bad document at line %d: %s", lineIdx, doc)
			continue
		}

		docId, err := strconv.ParseUint(vals[0], 10, 32)
		if err != nil {
			return fmt.Errorf("line %d: %w", lineIdx, err)
		}

		if _, ok := this.Docs[uint32(docId)]; !ok {
			this.DocNum += uint32(1)
			this.Docs[uint32(docId)] = nil
		}

		for _, kv := range vals[1:] {
			wc := strings.Split(kv, ":")
			if len(wc) != 2 {
				log.Warningf("bad word count at line %d: %s", lineIdx, kv)
				continue
			}

			wordId, err := strconv.ParseUint(wc[0], 10, 32)
			if err != nil {
				return fmt.Errorf("line %d: %w", lineIdx, err)
			}

			count, err := strconv.ParseUint(wc[1], 10, 32)
			if err != nil {
				return fmt.Errorf("line %d: %w", lineIdx, err)
			}

			this.Docs[uint32(docId)] = append(this.Docs[uint32(docId)], &WordCount{
				WordId: uint32(wordId),
				Count:  uint32(count),
			})
			if uint32(wordId) > vocabMaxId {
				vocabMaxId = uint32(wordId)
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return err
	}
	this.VocabSize = vocabMaxId + 1

	log.Infof("number of documents %d", this.DocNum)
	log.Infof("vocabulary size %d", this.VocabSize)
	return nil
}

// LoadText reads one document per line and builds word counts with a
// bag-of-words vectoriser. Empty lines are skipped.
func (this *Corpus) LoadText(fn string, stopWords ...string) error {
	f, err := os.Open(fn)
	if err != nil {
		return err
	}
	defer f.Close()

	var docs []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			docs = append(docs, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return err
	}
	return this.FromDocuments(docs, stopWords...)
}

// FromDocuments replaces the corpus with the word counts of docs. The
// i-th document gets document id i.
func (this *Corpus) FromDocuments(docs []string, stopWords ...string) error {
	if len(docs) == 0 {
		return fmt.Errorf("corpus: no documents")
	}
	vectoriser := nlp.NewCountVectoriser(stopWords...)
	tf, err := vectoriser.FitTransform(docs...)
	if err != nil {
		return err
	}

	terms, ndocs := tf.Dims()
	this.Docs = make(map[uint32][]*WordCount, ndocs)
	this.DocNum = uint32(ndocs)
	this.VocabSize = uint32(terms)
	this.Vocab = make([]string, terms)
	for term, id := range vectoriser.Vocabulary {
		this.Vocab[id] = term
	}

	for d := 0; d < ndocs; d += 1 {
		wcs := []*WordCount{}
		for t := 0; t < terms; t += 1 {
			if n := tf.At(t, d); n > 0 {
				wcs = append(wcs, &WordCount{WordId: uint32(t), Count: uint32(n)})
			}
		}
		this.Docs[uint32(d)] = wcs
	}

	log.Infof("number of documents %d", this.DocNum)
	log.Infof("vocabulary size %d", this.VocabSize)
	return nil
}

// DocIds returns the document ids in ascending order. The i-th id is
// the i-th row of Matrix.
func (this *Corpus) DocIds() []uint32 {
	ids := make([]uint32, 0, len(this.Docs))
	for id := range this.Docs {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Matrix returns the document x word count matrix.
func (this *Corpus) Matrix() (*mat.Dense, error) {
	ids := this.DocIds()
	if len(ids) == 0 || this.VocabSize == 0 {
		return nil, fmt.Errorf("corpus: empty corpus")
	}
	m := mat.NewDense(len(ids), int(this.VocabSize), nil)
	for r, id := range ids {
		row := m.RawRowView(r)
		for _, wc := range this.Docs[id] {
			row[wc.WordId] += float64(wc.Count)
		}
	}
	return m, nil
}
