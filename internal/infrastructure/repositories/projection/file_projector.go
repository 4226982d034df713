package projection

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"

	"github.com/rios0rios0/reposync/internal/domain/entities"
	"github.com/rios0rios0/reposync/internal/domain/repositories"
)

// Banner is written at the top of every projected file.
const Banner = "# Auto-generated by reposync: do not edit it manually!\n" +
	"# See https://github.com/rios0rios0/reposync\n"

const (
	dirPermissions  = 0o750
	filePermissions = 0o644
)

// FileProjector implements repositories.FileProjector. Templates use the HCL
// template language: ${name}, %{ if cond }...%{ endif } and %{ for x in list }...%{ endfor }.
type FileProjector struct{}

// NewFileProjector creates a new FileProjector.
func NewFileProjector() *FileProjector {
	return &FileProjector{}
}

var _ repositories.FileProjector = (*FileProjector)(nil)

func (it *FileProjector) Project(
	source, target string,
	mapping entities.FileMapping,
	bindings map[string]any,
) error {
	info, err := os.Stat(source)
	if err != nil {
		return fmt.Errorf("failed to read source %s: %w", source, err)
	}
	content, err := os.ReadFile(source)
	if err != nil {
		return fmt.Errorf("failed to read source %s: %w", source, err)
	}

	if mapping.Kind == entities.ProjectionTemplate {
		rendered, renderErr := Render(content, mapping.Source, bindings)
		if renderErr != nil {
			return renderErr
		}
		content = []byte(rendered)
	}

	if err = os.MkdirAll(filepath.Dir(target), dirPermissions); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", target, err)
	}

	mode := info.Mode().Perm()
	if mode == 0 {
		mode = filePermissions
	}
	if err = os.WriteFile(target, append([]byte(Banner), content...), mode); err != nil {
		return fmt.Errorf("failed to write %s: %w", target, err)
	}
	return os.Chmod(target, mode)
}

// Render evaluates an HCL template against the given bindings.
func Render(template []byte, filename string, bindings map[string]any) (string, error) {
	expr, diags := hclsyntax.ParseTemplate(template, filename, hcl.InitialPos)
	if diags.HasErrors() {
		return "", fmt.Errorf("failed to parse template %s: %s", filename, diags.Error())
	}

	variables := make(map[string]cty.Value, len(bindings))
	for name, value := range bindings {
		variables[name] = ToCty(value)
	}

	value, diags := expr.Value(&hcl.EvalContext{Variables: variables})
	if diags.HasErrors() {
		return "", fmt.Errorf("failed to render template %s: %s", filename, diags.Error())
	}
	if value.IsNull() || !value.IsKnown() {
		return "", fmt.Errorf("template %s rendered no value", filename)
	}
	if value.Type() != cty.String {
		if converted, err := convert.Convert(value, cty.String); err == nil {
			return converted.AsString(), nil
		}
		return "", fmt.Errorf("template %s did not render to a string", filename)
	}
	return value.AsString(), nil
}

// ToCty converts a decoded YAML value into a cty value.
func ToCty(value any) cty.Value {
	switch typed := value.(type) {
	case nil:
		return cty.NullVal(cty.DynamicPseudoType)
	case string:
		return cty.StringVal(typed)
	case bool:
		return cty.BoolVal(typed)
	case int:
		return cty.NumberIntVal(int64(typed))
	case int64:
		return cty.NumberIntVal(typed)
	case uint64:
		return cty.NumberUIntVal(typed)
	case float64:
		return cty.NumberFloatVal(typed)
	case []any:
		if len(typed) == 0 {
			return cty.EmptyTupleVal
		}
		elements := make([]cty.Value, 0, len(typed))
		for _, element := range typed {
			elements = append(elements, ToCty(element))
		}
		return cty.TupleVal(elements)
	case map[string]any:
		if len(typed) == 0 {
			return cty.EmptyObjectVal
		}
		attributes := make(map[string]cty.Value, len(typed))
		for key, element := range typed {
			attributes[key] = ToCty(element)
		}
		return cty.ObjectVal(attributes)
	default:
		return cty.StringVal(fmt.Sprint(typed))
	}
}
