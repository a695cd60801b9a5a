/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/suparena/querykit"
	"github.com/suparena/querykit/comparison"
	"github.com/suparena/querykit/datastore"
	"github.com/suparena/querykit/datastore/ddb"
	"github.com/suparena/querykit/datastore/mock"
	"github.com/suparena/querykit/query"
	"github.com/suparena/querykit/storagemodels"
	"go.uber.org/zap"
)

// filterFlags collects repeated -filter name:OP:value arguments.
type filterFlags []storagemodels.FilterClause

func (f *filterFlags) String() string {
	parts := make([]string, 0, len(*f))
	for _, c := range *f {
		parts = append(parts, fmt.Sprintf("%s:%s:%v", c.Name, c.Operator, c.Values[0]))
	}
	return strings.Join(parts, ",")
}

func (f *filterFlags) Set(s string) error {
	parts := strings.SplitN(s, ":", 3)
	if len(parts) != 3 || parts[0] == "" {
		return fmt.Errorf("filter %q must look like name:OP:value", s)
	}
	op, err := comparison.Parse(parts[1])
	if err != nil {
		return err
	}
	*f = append(*f, storagemodels.FilterClause{
		Name:     parts[0],
		Values:   []any{scalar(parts[2])},
		Operator: op,
	})
	return nil
}

// scalar decodes JSON literals (numbers, booleans, quoted strings) and
// falls back to the raw text.
func scalar(s string) any {
	var v any
	if err := json.Unmarshal([]byte(s), &v); err == nil {
		switch v.(type) {
		case float64, bool, string:
			return v
		}
	}
	return s
}

// options is everything a single invocation needs, decoded from the flags.
type options struct {
	schemaPath string
	model      string
	op         string
	probe      storagemodels.Item
	patch      storagemodels.Item
	filters    []storagemodels.FilterClause
	limit      int
	desc       bool
	asc        bool
	exec       bool
	timeout    time.Duration
}

var (
	schemaFlag  = flag.String("schema", "models.yaml", "YAML file with model definitions")
	modelFlag   = flag.String("model", "", "Model name")
	opFlag      = flag.String("op", "find", "Operation: find, findOne, scan, findOneAndUpdate, findOneAndDelete, save, get")
	probeFlag   = flag.String("probe", "{}", "Equality probe (or item for save, key for get) as a JSON object")
	patchFlag   = flag.String("patch", "{}", "Fields to replace for findOneAndUpdate, as a JSON object")
	limitFlag   = flag.Int("limit", 0, "Maximum number of rows to read")
	descFlag    = flag.Bool("desc", false, "Read in descending sort-key order")
	ascFlag     = flag.Bool("asc", false, "Read in ascending sort-key order")
	execFlag    = flag.Bool("exec", false, "Run against DynamoDB instead of printing the compiled documents")
	timeoutFlag = flag.Duration("timeout", 30*time.Second, "Timeout for -exec")
	debugFlag   = flag.Bool("debug", false, "Enable debug logging")
	versionFlag = flag.Bool("version", false, "Show version information")
	vFlag       = flag.Bool("v", false, "Show version information (short)")
	filters     filterFlags
)

func main() {
	flag.Var(&filters, "filter", "Filter clause name:OP:value (repeatable), e.g. age:GT:30")
	flag.Parse()

	if *versionFlag || *vFlag {
		fmt.Println(querykit.GetBuildInfo())
		os.Exit(0)
	}

	logger, err := newLogger(*debugFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	opts, err := optionsFromFlags()
	if err == nil {
		err = run(context.Background(), logger, opts, os.Stdout)
	}
	if err != nil {
		logger.Error("querykit failed", zap.Error(err))
		os.Exit(1)
	}
}

func newLogger(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{"stderr"}
	return cfg.Build()
}

func optionsFromFlags() (options, error) {
	probe, err := parseItem("probe", *probeFlag)
	if err != nil {
		return options{}, err
	}
	patch, err := parseItem("patch", *patchFlag)
	if err != nil {
		return options{}, err
	}
	return options{
		schemaPath: *schemaFlag,
		model:      *modelFlag,
		op:         *opFlag,
		probe:      probe,
		patch:      patch,
		filters:    filters,
		limit:      *limitFlag,
		desc:       *descFlag,
		asc:        *ascFlag,
		exec:       *execFlag,
		timeout:    *timeoutFlag,
	}, nil
}

// run executes opts against DynamoDB, or as a dry run against the spy, and
// writes the results (or the compiled documents) to out as JSON.
func run(ctx context.Context, logger *zap.Logger, opts options, out io.Writer) error {
	var (
		exec datastore.Executor
		spy  *mock.Executor
		err  error
	)
	if opts.exec {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.timeout)
		defer cancel()
		exec, err = ddb.NewExecutorFromEnv(ctx, ddb.WithLogger(logger))
		if err != nil {
			return err
		}
	} else {
		// Dry run: the looked-up row of a compound operation is the probe itself.
		spy = mock.New().WithQueryItems(opts.probe).WithGetItem(opts.probe)
		exec = spy
	}

	client := querykit.New(exec, querykit.WithLogger(logger))
	if err := client.Registry().LoadYAMLFile(opts.schemaPath); err != nil {
		return err
	}
	name := opts.model
	if name == "" {
		names := client.Registry().Names()
		if len(names) != 1 {
			return fmt.Errorf("-model is required, choose one of %v", names)
		}
		name = names[0]
	}
	model, err := client.Model(name)
	if err != nil {
		return err
	}

	result, err := dispatch(ctx, model, opts)
	if err != nil {
		return err
	}

	if spy != nil {
		return printJSON(out, documents(spy.Calls()))
	}
	return printJSON(out, result)
}

func dispatch(ctx context.Context, model *query.Model, opts options) (any, error) {
	switch opts.op {
	case "save":
		return model.Save(ctx, opts.probe)
	case "get":
		return model.Get(ctx, opts.probe)
	}

	op, err := query.ParseOperation(opts.op)
	if err != nil {
		return nil, err
	}

	var b *query.Builder
	switch op {
	case query.OpFind:
		b = model.Find(opts.probe, opts.filters...)
	case query.OpFindOne:
		b = model.FindOne(opts.probe, opts.filters...)
	case query.OpScan:
		b = model.Scan(opts.probe, opts.filters...)
	case query.OpFindOneAndUpdate:
		b = model.FindOneAndUpdate(opts.probe, opts.patch, opts.filters...)
	case query.OpFindOneAndDelete:
		b = model.FindOneAndDelete(opts.probe, opts.filters...)
	}
	if opts.limit != 0 {
		b.Limit(opts.limit)
	}
	if opts.desc {
		b.Descending()
	}
	if opts.asc {
		b.Ascending()
	}
	return b.Execute(ctx)
}

type document struct {
	Call     string                      `json:"call"`
	Document storagemodels.CompiledQuery `json:"document"`
}

func documents(calls []mock.Call) []document {
	out := make([]document, 0, len(calls))
	for _, c := range calls {
		out = append(out, document{Call: c.Method, Document: c.Query})
	}
	return out
}

func parseItem(flagName, raw string) (storagemodels.Item, error) {
	item := storagemodels.Item{}
	if strings.TrimSpace(raw) == "" {
		return item, nil
	}
	if err := json.Unmarshal([]byte(raw), &item); err != nil {
		return nil, fmt.Errorf("-%s must be a JSON object: %w", flagName, err)
	}
	return item, nil
}

func printJSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
