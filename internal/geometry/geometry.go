// Package geometry computes planar polygon areas from 3-D vertex loops and
// classifies surfaces by role.
package geometry

import (
	"errors"
	"math"

	"github.com/danielpiro/idf-reader/internal/model"
)

// ErrDegenerate marks input that cannot yield a meaningful area: fewer than
// three vertices, or a loop whose projected area is effectively zero.
// Callers record a diagnostic and exclude the surface from aggregation;
// the area is never silently merged into totals as zero.
var ErrDegenerate = errors.New("degenerate vertex loop")

// areaEpsilon is the threshold below which a computed area is treated as
// degenerate (collinear or coincident vertices).
const areaEpsilon = 1e-9

// PolygonArea computes the area of a closed planar vertex loop. The Newell
// normal generalizes the shoelace formula to arbitrarily oriented planes:
// its magnitude is twice the loop area, so for a horizontal floor loop this
// reduces to the plain shoelace over the horizontal axes. Taking the
// magnitude makes the result invariant to winding direction, and the cyclic
// sum makes it invariant to which vertex the loop starts at.
func PolygonArea(vertices []model.Vertex) (float64, error) {
	if len(vertices) < 3 {
		return 0, ErrDegenerate
	}

	nx, ny, nz := newellNormal(vertices)
	area := math.Sqrt(nx*nx+ny*ny+nz*nz) / 2

	if area < areaEpsilon {
		return 0, ErrDegenerate
	}
	return area, nil
}

// newellNormal returns the (unnormalized) plane normal of the vertex loop.
func newellNormal(vertices []model.Vertex) (nx, ny, nz float64) {
	n := len(vertices)
	for i := 0; i < n; i++ {
		p := vertices[i]
		q := vertices[(i+1)%n]
		nx += (p.Y - q.Y) * (p.Z + q.Z)
		ny += (p.Z - q.Z) * (p.X + q.X)
		nz += (p.X - q.X) * (p.Y + q.Y)
	}
	return nx, ny, nz
}

// Role is the aggregation role of a surface.
type Role int

const (
	// RoleFloor contributes to zone floor area.
	RoleFloor Role = iota
	// RoleWall contributes to construction-level reporting only.
	RoleWall
	// RoleCeiling contributes to construction-level reporting only.
	RoleCeiling
	// RoleRoof contributes to construction-level reporting only.
	RoleRoof
	// RoleUnknown covers surface types outside the recognized set.
	RoleUnknown
)

// String returns the lowercase label for a Role.
func (r Role) String() string {
	switch r {
	case RoleFloor:
		return "floor"
	case RoleWall:
		return "wall"
	case RoleCeiling:
		return "ceiling"
	case RoleRoof:
		return "roof"
	default:
		return "unknown"
	}
}

// Classify maps a surface type to its aggregation role.
func Classify(t model.SurfaceType) Role {
	switch t {
	case model.SurfaceFloor:
		return RoleFloor
	case model.SurfaceWall:
		return RoleWall
	case model.SurfaceCeiling:
		return RoleCeiling
	case model.SurfaceRoof:
		return RoleRoof
	default:
		return RoleUnknown
	}
}

// ElementType labels a surface for construction-level reporting based on
// its type, boundary condition, and whether the owning zone is serviced by
// HVAC. The labels follow the reporting convention of the source material.
func ElementType(t model.SurfaceType, b model.BoundaryCondition, hvac bool) string {
	switch t {
	case model.SurfaceWall:
		if b == model.BoundaryOutdoors || b == model.BoundaryGround {
			return "External wall"
		}
		if hvac {
			return "Internal wall"
		}
		return "Separation wall"
	case model.SurfaceFloor:
		switch b {
		case model.BoundaryOutdoors:
			return "External floor"
		case model.BoundaryGround:
			return "Ground floor"
		default:
			if hvac {
				return "Intermediate floor"
			}
			return "Separation floor"
		}
	case model.SurfaceCeiling:
		switch b {
		case model.BoundaryGround:
			return "Ground ceiling"
		case model.BoundaryOutdoors:
			return "External ceiling"
		default:
			if hvac {
				return "Intermediate ceiling"
			}
			return "Separation ceiling"
		}
	case model.SurfaceRoof:
		return "Roof"
	default:
		return ""
	}
}
