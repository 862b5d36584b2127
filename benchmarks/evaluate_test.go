package benchmarks

import (
	"context"
	"testing"

	"github.com/randalmurphal/dialogexpr/pkg/dialogexpr"
	"github.com/randalmurphal/dialogexpr/pkg/dialogexpr/memory"
)

// BenchmarkEvaluate_Sum_10 evaluates a 10-term sum.
func BenchmarkEvaluate_Sum_10(b *testing.B) {
	expr := buildSum(10)
	state := memory.Wrap(sumScope(10))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = expr.TryEvaluate(state, dialogexpr.Options{})
	}
}

// BenchmarkEvaluate_Sum_100 evaluates a 100-term sum.
func BenchmarkEvaluate_Sum_100(b *testing.B) {
	expr := buildSum(100)
	state := memory.Wrap(sumScope(100))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = expr.TryEvaluate(state, dialogexpr.Options{})
	}
}

// BenchmarkEvaluate_Path reads a nested struct field.
func BenchmarkEvaluate_Path(b *testing.B) {
	expr := accessor("user", "name")
	state := memory.Wrap(createScope(10))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = expr.TryEvaluate(state, dialogexpr.Options{})
	}
}

// BenchmarkEvaluate_Branching evaluates an if() on a comparison.
func BenchmarkEvaluate_Branching(b *testing.B) {
	cond := dialogexpr.Must(dialogexpr.MakeExpression(">=", accessor("user", "age"), dialogexpr.NewConstant(18)))
	expr := dialogexpr.Must(dialogexpr.MakeExpression("if", cond,
		dialogexpr.NewConstant("adult"), dialogexpr.NewConstant("minor")))
	state := memory.Wrap(createScope(0))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = expr.TryEvaluate(state, dialogexpr.Options{})
	}
}

// BenchmarkEvaluate_Foreach_10 maps over 10 items.
func BenchmarkEvaluate_Foreach_10(b *testing.B) {
	benchmarkForeach(b, 10)
}

// BenchmarkEvaluate_Foreach_100 maps over 100 items.
func BenchmarkEvaluate_Foreach_100(b *testing.B) {
	benchmarkForeach(b, 100)
}

// BenchmarkEvaluate_Error measures a failing evaluation.
func BenchmarkEvaluate_Error(b *testing.B) {
	expr := dialogexpr.Must(dialogexpr.MakeExpression("div", dialogexpr.NewConstant(1), dialogexpr.NewConstant(0)))
	state := memory.Wrap(nil)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = expr.TryEvaluate(state, dialogexpr.Options{})
	}
}

// BenchmarkEngine_Evaluate measures the Engine overhead with no-op telemetry.
func BenchmarkEngine_Evaluate(b *testing.B) {
	engine := dialogexpr.NewEngine(dialogexpr.WithLogger(nil))
	expr := buildSum(10)
	scope := sumScope(10)
	ctx := context.Background()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = engine.Evaluate(ctx, expr, scope)
	}
}

// BenchmarkScopeWrap measures normalising a struct scope.
func BenchmarkScopeWrap(b *testing.B) {
	scope := createScope(10)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		memory.Wrap(scope)
	}
}

func benchmarkForeach(b *testing.B, n int) {
	b.Helper()
	body := dialogexpr.Must(dialogexpr.MakeExpression("*", accessor("item", "price"), dialogexpr.NewConstant(2)))
	expr := dialogexpr.Must(dialogexpr.MakeExpression("foreach", accessor("items"), accessor("item"), body))
	state := memory.Wrap(createScope(n))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = expr.TryEvaluate(state, dialogexpr.Options{})
	}
}
