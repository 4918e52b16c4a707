package invoke_test

import (
	"reflect"
	"testing"

	"modelopt/internal/invoke"
	"modelopt/internal/optcfg"
)

func TestAddOptionWithRequiredArgs(t *testing.T) {
	args := optcfg.NewOptionSet()
	args.Set("input_path", "model.circle")
	args.Set("output_path", "out.circle")

	argv := invoke.New("mo-optimize", args).
		AddOptionWithRequiredArgs("--input_path", "input_path").
		AddOptionWithRequiredArgs("--output_path", "output_path").
		Args()

	want := []string{"mo-optimize", "--input_path", "model.circle", "--output_path", "out.circle"}
	if !reflect.DeepEqual(argv, want) {
		t.Fatalf("argv = %v, want %v", argv, want)
	}
}

func TestAddOptionWithRequiredArgsAllOrNothing(t *testing.T) {
	args := optcfg.NewOptionSet()
	args.Set("min_percentile", "1")

	argv := invoke.New("mo-quantize", args).
		AddOptionWithRequiredArgs("--percentiles", "min_percentile", "max_percentile").
		Args()

	if !reflect.DeepEqual(argv, []string{"mo-quantize"}) {
		t.Fatalf("partial option emitted: %v", argv)
	}
}

func TestAddOptionWithRequiredArgsTreatsEmptyAsAbsent(t *testing.T) {
	args := optcfg.NewOptionSet()
	args.Set("input_path", "")

	argv := invoke.New("mo-optimize", args).
		AddOptionWithRequiredArgs("--input_path", "input_path").
		Args()

	if !reflect.DeepEqual(argv, []string{"mo-optimize"}) {
		t.Fatalf("empty value emitted: %v", argv)
	}
}

func TestAddOptionWithRequiredArgsExpandsSequences(t *testing.T) {
	args := optcfg.NewOptionSet()
	args.Append("tensor_name", "t1")
	args.Append("tensor_name", "t2")

	argv := invoke.New("mo-quantize", args).
		AddOptionWithRequiredArgs("--tensor_name", "tensor_name").
		Args()

	want := []string{"mo-quantize", "--tensor_name", "t1", "t2"}
	if !reflect.DeepEqual(argv, want) {
		t.Fatalf("argv = %v, want %v", argv, want)
	}
}

func TestAddOptionWithValues(t *testing.T) {
	argv := invoke.New("mo-pack", optcfg.NewOptionSet()).
		AddOptionWithValues("--backend", "npu", "cpu").
		Args()

	want := []string{"mo-pack", "--backend", "npu", "cpu"}
	if !reflect.DeepEqual(argv, want) {
		t.Fatalf("argv = %v, want %v", argv, want)
	}
}

func TestAddFlagIfPresent(t *testing.T) {
	args := optcfg.NewOptionSet()
	args.Set("verbose", "true")
	args.Set("quiet", "False")

	argv := invoke.New("mo-codegen", args).
		AddFlagIfPresent("--verbose", "verbose").
		AddFlagIfPresent("--quiet", "quiet").
		AddFlagIfPresent("--dry-run", "dry_run").
		Args()

	want := []string{"mo-codegen", "--verbose"}
	if !reflect.DeepEqual(argv, want) {
		t.Fatalf("argv = %v, want %v", argv, want)
	}
}

func TestTokenOrderIsCallOrder(t *testing.T) {
	args := optcfg.NewOptionSet()
	args.Set("b", "2")
	args.Set("a", "1")

	argv := invoke.New("tool", args).
		AddOptionWithRequiredArgs("--b", "b").
		AddOptionWithValues("--lit", "x").
		AddOptionWithRequiredArgs("--a", "a").
		Args()

	want := []string{"tool", "--b", "2", "--lit", "x", "--a", "1"}
	if !reflect.DeepEqual(argv, want) {
		t.Fatalf("argv = %v, want %v", argv, want)
	}
}
