package hosttype_test

import (
	"testing"

	"github.com/jzeiders/graphql-go-gen/internal/hosttype"
	"github.com/stretchr/testify/assert"
)

func TestNamedRender(t *testing.T) {
	n := hosttype.NewNamed("string", false)
	assert.Equal(t, "string", n.Render(false))

	nn := hosttype.NewNamed("string", true)
	assert.Equal(t, "string | null", nn.Render(false))
}

func TestArrayRenderDoesNotDoubleWrapElement(t *testing.T) {
	el := hosttype.NewNamed("MenuShortFragment", false)
	arr := hosttype.NewArray(el, true)
	assert.Equal(t, "Array<MenuShortFragment> | null", arr.Render(false))
}

func TestObjectRenderSortsFieldsAndAppliesOptionalMarker(t *testing.T) {
	obj := hosttype.NewObject([]hosttype.Field{
		{Name: "shopID", Type: hosttype.NewNamed("string", false)},
		{Name: "id", Type: hosttype.NewNamed("string", true)},
	}, false)

	assert.Equal(t, "{ id?: string | null; shopID: string }", obj.Render(true))
	assert.Equal(t, "{ id: string | null; shopID: string }", obj.Render(false))
}

func TestIntersectionClearsMemberNullableAndRendersParens(t *testing.T) {
	fragRef := hosttype.NewNamed("AFragment", true)
	local := hosttype.NewObject([]hosttype.Field{
		{Name: "b", Type: hosttype.NewNamed("string", false)},
	}, true)

	inter := hosttype.NewIntersection([]*hosttype.Type{fragRef, local}, true)
	assert.False(t, inter.Members[0].Nullable)
	assert.False(t, inter.Members[1].Nullable)
	assert.Equal(t, "(AFragment & { b: string }) | null", inter.Render(false))
}

func TestIsObjectLiteral(t *testing.T) {
	assert.True(t, hosttype.NewObject(nil, false).IsObjectLiteral())
	assert.False(t, hosttype.NewNamed("x", false).IsObjectLiteral())
	assert.False(t, hosttype.NewIntersection(nil, false).IsObjectLiteral())
}

func TestRenderDeclarationPicksInterfaceVsAlias(t *testing.T) {
	obj := hosttype.NewObject([]hosttype.Field{{Name: "id", Type: hosttype.NewNamed("string", false)}}, false)
	assert.Equal(t, "interface GetMenuQuery { id: string }", hosttype.RenderDeclaration("GetMenuQuery", obj, false))

	alias := hosttype.NewNamed("ArbitraryObjectType", false)
	assert.Equal(t, "type Scalar = ArbitraryObjectType;", hosttype.RenderDeclaration("Scalar", alias, false))
}
