package config

import "fmt"

// Validate performs the "Configuration error" check spec.md §7 requires
// before the pipeline starts any phase: negative link lengths, MinSize<1,
// and any error recorded by a functional Option during construction.
func (o Options) Validate() error {
	if o.err != nil {
		return o.err
	}
	if o.EllPhys <= 0 {
		return fmt.Errorf("%w: EllPhys must be positive (%g)", ErrInvalidOption, o.EllPhys)
	}
	if o.EllVel <= 0 {
		return fmt.Errorf("%w: EllVel must be positive (%g)", ErrInvalidOption, o.EllVel)
	}
	if o.MinSize < 1 {
		return fmt.Errorf("%w: MinSize must be >= 1 (%d)", ErrInvalidOption, o.MinSize)
	}
	if o.HaloMinSize < 1 {
		return fmt.Errorf("%w: HaloMinSize must be >= 1 (%d)", ErrInvalidOption, o.HaloMinSize)
	}
	if o.MinSubSize < 1 {
		return fmt.Errorf("%w: MinSubSize must be >= 1 (%d)", ErrInvalidOption, o.MinSubSize)
	}
	if o.MinCellSize < 1 {
		return fmt.Errorf("%w: MinCellSize must be >= 1 (%d)", ErrInvalidOption, o.MinCellSize)
	}
	if o.BucketSize < 1 {
		return fmt.Errorf("%w: BucketSize must be >= 1 (%d)", ErrInvalidOption, o.BucketSize)
	}
	if o.NCellFac <= 0 {
		return fmt.Errorf("%w: NCellFac must be positive (%g)", ErrInvalidOption, o.NCellFac)
	}
	if o.FMerge <= 0 || o.FMerge > 1 {
		return fmt.Errorf("%w: FMerge must be in (0,1] (%g)", ErrInvalidOption, o.FMerge)
	}
	if o.SigLevel < 0 {
		return fmt.Errorf("%w: SigLevel must be >= 0 (%g)", ErrInvalidOption, o.SigLevel)
	}
	if o.MaxWorkers < 0 {
		return fmt.Errorf("%w: MaxWorkers must be >= 0 (%d)", ErrInvalidOption, o.MaxWorkers)
	}

	return nil
}
