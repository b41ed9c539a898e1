package inventory

import (
	"fmt"
	"os"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/load"
	"github.com/hashicorp/go-multierror"

	"github.com/roach88/seek/internal/item"
)

// LoadCUEFile compiles a single .cue file into an inventory.
func LoadCUEFile(path string) (*Inventory, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{Code: ErrCodeLoadFailed, Message: fmt.Sprintf("reading %s: %v", path, err)}
	}

	value := cuecontext.New().CompileBytes(data, cue.Filename(path))
	if err := value.Err(); err != nil {
		return nil, formatCUEError(err, ErrCodeBuildFailed)
	}
	return CompileCUE(value)
}

// LoadCUEDir loads the CUE package in dir into an inventory.
func LoadCUEDir(dir string) (*Inventory, error) {
	instances := load.Instances([]string{"."}, &load.Config{Dir: dir})
	if len(instances) == 0 {
		return nil, &LoadError{Code: ErrCodeLoadFailed, Message: "no CUE instances loaded"}
	}

	inst := instances[0]
	if inst.Err != nil {
		return nil, &LoadError{Code: ErrCodeLoadFailed, Message: fmt.Sprintf("loading CUE files: %v", inst.Err)}
	}

	value := cuecontext.New().BuildInstance(inst)
	if err := value.Err(); err != nil {
		return nil, formatCUEError(err, ErrCodeBuildFailed)
	}
	return CompileCUE(value)
}

// CompileCUE converts a CUE value with optional items and containers fields
// into an inventory. Every invalid entry is reported, each with its CUE
// position.
func CompileCUE(v cue.Value) (*Inventory, error) {
	if err := v.Err(); err != nil {
		return nil, formatCUEError(err, ErrCodeBuildFailed)
	}

	inv := &Inventory{}
	var errs *multierror.Error

	if itemsVal := v.LookupPath(cue.ParsePath("items")); itemsVal.Exists() {
		records, err := compileItems(itemsVal)
		errs = multierror.Append(errs, err)
		inv.Items = records
	}

	if containersVal := v.LookupPath(cue.ParsePath("containers")); containersVal.Exists() {
		iter, err := containersVal.Fields()
		if err != nil {
			errs = multierror.Append(errs, formatCUEError(err, ErrCodeInvalidItem))
		} else {
			for iter.Next() {
				chest, err := compileContainer(iter.Label(), iter.Value())
				errs = multierror.Append(errs, err)
				if chest != nil {
					inv.Containers = append(inv.Containers, chest)
				}
			}
		}
	}

	if err := errs.ErrorOrNil(); err != nil {
		return nil, err
	}
	return inv, nil
}

func compileContainer(id string, v cue.Value) (*item.Chest, error) {
	chest := &item.Chest{ID: id}
	var errs *multierror.Error

	labelVal := v.LookupPath(cue.ParsePath("label"))
	if !labelVal.Exists() {
		errs = multierror.Append(errs, &LoadError{
			Code:    ErrCodeInvalidItem,
			Message: fmt.Sprintf("container %q: label is required", id),
			Pos:     v.Pos(),
		})
	} else if label, err := labelVal.String(); err != nil {
		errs = multierror.Append(errs, formatCUEError(err, ErrCodeInvalidItem))
	} else {
		chest.ChestName = label
	}

	if itemsVal := v.LookupPath(cue.ParsePath("items")); itemsVal.Exists() {
		records, err := compileItems(itemsVal)
		errs = multierror.Append(errs, err)
		chest.Contents = records
	}

	return chest, errs.ErrorOrNil()
}

func compileItems(v cue.Value) ([]*item.Record, error) {
	iter, err := v.List()
	if err != nil {
		return nil, formatCUEError(err, ErrCodeInvalidItem)
	}

	var (
		records []*item.Record
		errs    *multierror.Error
	)
	for iter.Next() {
		r, err := compileItem(iter.Value())
		if err != nil {
			errs = multierror.Append(errs, err)
			continue
		}
		records = append(records, r)
	}
	return records, errs.ErrorOrNil()
}

func compileItem(v cue.Value) (*item.Record, error) {
	r := &item.Record{}

	nameVal := v.LookupPath(cue.ParsePath("name"))
	if !nameVal.Exists() {
		return nil, &LoadError{Code: ErrCodeInvalidItem, Message: "item: name is required", Pos: v.Pos()}
	}
	name, err := nameVal.String()
	if err != nil {
		return nil, formatCUEError(err, ErrCodeInvalidItem)
	}
	r.ItemName = name

	if idVal := v.LookupPath(cue.ParsePath("id")); idVal.Exists() {
		if r.ID, err = idVal.String(); err != nil {
			return nil, formatCUEError(err, ErrCodeInvalidItem)
		}
	}

	if catVal := v.LookupPath(cue.ParsePath("category")); catVal.Exists() {
		if r.ItemCategory, err = catVal.String(); err != nil {
			return nil, formatCUEError(err, ErrCodeInvalidItem)
		}
	}

	r.ItemQuantity = 1
	if qtyVal := v.LookupPath(cue.ParsePath("quantity")); qtyVal.Exists() {
		n, err := qtyVal.Int64()
		if err != nil {
			return nil, formatCUEError(err, ErrCodeInvalidItem)
		}
		if n < 0 {
			return nil, &LoadError{
				Code:    ErrCodeInvalidItem,
				Message: fmt.Sprintf("item %q: quantity must not be negative, got %d", name, n),
				Pos:     qtyVal.Pos(),
			}
		}
		r.ItemQuantity = int(n)
	}

	if qualVal := v.LookupPath(cue.ParsePath("quality")); qualVal.Exists() {
		q, err := compileQuality(qualVal)
		if err != nil {
			return nil, &LoadError{
				Code:    ErrCodeInvalidItem,
				Message: fmt.Sprintf("item %q: %v", name, err),
				Pos:     qualVal.Pos(),
			}
		}
		r.ItemQuality = q
	}

	if tagsVal := v.LookupPath(cue.ParsePath("tags")); tagsVal.Exists() {
		iter, err := tagsVal.List()
		if err != nil {
			return nil, formatCUEError(err, ErrCodeInvalidItem)
		}
		for iter.Next() {
			tag, err := iter.Value().String()
			if err != nil {
				return nil, formatCUEError(err, ErrCodeInvalidItem)
			}
			r.ItemTags = append(r.ItemTags, tag)
		}
	}

	return r, nil
}

// compileQuality accepts a tier name or an integer.
func compileQuality(v cue.Value) (item.Quality, error) {
	switch v.Kind() {
	case cue.IntKind:
		n, err := v.Int64()
		if err != nil {
			return 0, err
		}
		return item.ParseQuality(fmt.Sprint(n))
	case cue.StringKind:
		s, err := v.String()
		if err != nil {
			return 0, err
		}
		return item.ParseQuality(s)
	default:
		return 0, fmt.Errorf("quality must be a name or an integer, got %s", v.Kind())
	}
}

// formatCUEError extracts position info from CUE errors.
func formatCUEError(err error, code string) error {
	if err == nil {
		return nil
	}

	errs := cueerrors.Errors(err)
	if len(errs) == 0 {
		return &LoadError{Code: code, Message: err.Error()}
	}

	firstErr := errs[0]
	loadErr := &LoadError{Code: code, Message: firstErr.Error()}
	if positions := cueerrors.Positions(firstErr); len(positions) > 0 {
		loadErr.Pos = positions[0]
	}
	return loadErr
}
