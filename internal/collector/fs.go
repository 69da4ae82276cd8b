package collector

var fsDescs = []Desc{
	{Name: "vfs_used_bytes", Help: "Used bytes on the zone root dataset", Type: Gauge},
	{Name: "vfs_available_bytes", Help: "Available bytes on the zone root dataset", Type: Gauge},
}

// FS collects a zone's filesystem usage from the dataset list snapshot.
type FS struct{}

var _ Module = (*FS)(nil)

func (FS) Name() string      { return "fs" }
func (FS) Scope() Scope      { return ScopeZone }
func (FS) Domains() []Domain { return []Domain{DomainFS} }

func (FS) Collect(t Target, b Bundle) ([]Value, error) {
	for _, u := range b.FS {
		if u.Dataset != t.Zone.Dataset {
			continue
		}
		return []Value{
			{Desc: &fsDescs[0], Value: float64(u.Used)},
			{Desc: &fsDescs[1], Value: float64(u.Avail)},
		}, nil
	}
	return nil, nil
}
