package cache

// Keyer derives cache keys.
type Keyer interface {
	// LayoutKey keys a drawn layout by the hash of its description.
	LayoutKey(descHash string, opts LayoutKeyOpts) string
	// ArtifactKey keys a rendered artifact by the hash of its layout.
	ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string
}

// LayoutKeyOpts are the options that change the geometry of a layout.
type LayoutKeyOpts struct {
	Strategy      string `json:"strategy"`
	Version       int    `json:"version"`
	RouteCells    int    `json:"route_cells,omitempty"`
	RouteMaxNodes int    `json:"route_max_nodes,omitempty"`
}

// ArtifactKeyOpts are the options that change a rendered artifact.
type ArtifactKeyOpts struct {
	Format      string  `json:"format"`
	Shading     bool    `json:"shading"`
	Labels      bool    `json:"labels"`
	ZoneCenters bool    `json:"zone_centers"`
	Padding     float64 `json:"padding"`
	Scale       float64 `json:"scale"`
}

// DefaultKeyer hashes the key parts with SHA-256.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// LayoutKey returns "layout:<hash>".
func (DefaultKeyer) LayoutKey(descHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", descHash, opts)
}

// ArtifactKey returns "artifact:<hash>".
func (DefaultKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", layoutHash, opts)
}
