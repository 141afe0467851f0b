package bindcheck

const (
	binderPkgPath = "github.com/mazrean/binder"

	bindFuncName         = "Bind"
	transientOptName     = "AsTransient"
	eagerOptName         = "Eagerly"
	bindServicesFuncName = "BindServices"
	binderTypeName       = "Binder"

	packageScope = "<package>"
)
