package emit

import "github.com/jzeiders/graphql-go-gen/internal/resolve"

func fakeContextForDeps() *resolve.Context {
	ctx := resolve.NewContext()
	ctx.FragmentDeps["A"] = []string{"B"}
	ctx.FragmentDeps["B"] = []string{"C"}
	ctx.FragmentDeps["C"] = nil
	return ctx
}
