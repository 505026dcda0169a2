package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestExprArithmetic(t *testing.T) {
	e := Add(Mul(Var("a"), Literal(2)), Var("b"))
	v, err := e.Eval(map[string]float64{"a": 3, "b": 4})
	require.NoError(t, err)
	require.Equal(t, 10.0, v)
}

func TestExprEuclideanMod(t *testing.T) {
	e := Mod(Var("x"), Literal(5))
	v, err := e.Eval(map[string]float64{"x": -3})
	require.NoError(t, err)
	require.Equal(t, 2.0, v)
}

func TestExprUnknownVariable(t *testing.T) {
	e := Var("missing")
	_, err := e.Eval(map[string]float64{})
	require.Error(t, err)
	var uv *ErrUnknownVariable
	require.ErrorAs(t, err, &uv)
	require.Equal(t, "missing", uv.Name)
}

func TestExprComparisonAndLogic(t *testing.T) {
	e, err := Parse(`Expr((hops > 2) && (delay <= 100))`)
	require.NoError(t, err)
	got, err := e.Expr.Eval(map[string]float64{"hops": 3, "delay": 100})
	require.NoError(t, err)
	require.Equal(t, 1.0, got)
}
