package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseObjectFields(t *testing.T) {
	v, err := Parse(`Uniform{allow_self:false,legend_name:"uniform"}`)
	require.NoError(t, err)
	require.Equal(t, KindObject, v.Kind)
	require.Equal(t, "Uniform", v.Tag)

	allowSelf, ok := v.Field("allow_self")
	require.True(t, ok)
	require.Equal(t, false, allowSelf.AsBool("Uniform", "allow_self"))

	legend, ok := v.Field("legend_name")
	require.True(t, ok)
	require.Equal(t, "uniform", legend.AsString("Uniform", "legend_name"))
}

func TestParseNestedArraysAndObjects(t *testing.T) {
	v, err := Parse(`CartesianTransform{sides:[4,8,8],shift:[0,4,0],complement:[false,true,false]}`)
	require.NoError(t, err)
	require.Equal(t, []int{4, 8, 8}, v.RequireField("CartesianTransform", "sides").UsizeArray("CartesianTransform", "sides"))
	require.Equal(t, []bool{false, true, false}, v.RequireField("CartesianTransform", "complement").BoolArray("CartesianTransform", "complement"))
}

func TestParseNone(t *testing.T) {
	v, err := Parse(`None`)
	require.NoError(t, err)
	require.Equal(t, KindNone, v.Kind)
}

func TestParseBareTag(t *testing.T) {
	v, err := Parse(`Identity`)
	require.NoError(t, err)
	require.Equal(t, "Identity", v.Tag)
	require.Len(t, v.Fields, 0)
}

func TestParseNegativeNumbers(t *testing.T) {
	v, err := Parse(`CartesianTransform{multiplier:[-1,1,-1]}`)
	require.NoError(t, err)
	require.Equal(t, []int{-1, 1, -1}, v.RequireField("x", "multiplier").IntArray("x", "multiplier"))
}

func TestParseExprLiteral(t *testing.T) {
	v, err := Parse(`UserStat{key:Expr(hops % 4),value:Expr(delay)}`)
	require.NoError(t, err)
	key := v.RequireField("UserStat", "key").AsExpr("UserStat", "key")
	result, err := key.Eval(map[string]float64{"hops": 10})
	require.NoError(t, err)
	require.Equal(t, 2.0, result)
}

func TestParseTrailingInputFails(t *testing.T) {
	_, err := Parse(`Identity garbage`)
	require.Error(t, err)
}

func TestParseUnterminatedObjectFails(t *testing.T) {
	_, err := Parse(`Uniform{allow_self:false`)
	require.Error(t, err)
}
