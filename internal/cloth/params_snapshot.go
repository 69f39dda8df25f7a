package cloth

import (
	"fmt"
	"strconv"
	"strings"

	"clothsim/internal/core"
)

// Parameters describes the cloth for HUDs and run logs.
func (c *Cloth) Parameters() core.ParameterSnapshot {
	cfg := c.cfg
	groups := []core.ParameterGroup{
		{
			Name: "Grid",
			Params: []core.Parameter{
				intParam("i_divisions", "Columns", cfg.IDivisions),
				intParam("j_divisions", "Rows", cfg.JDivisions),
				floatParam("i_size", "Width", cfg.ISize),
				floatParam("j_size", "Height", cfg.JSize),
			},
		},
		{
			Name: "Physics",
			Params: []core.Parameter{
				floatParam("spring_k", "Spring K", cfg.SpringK),
				floatParam("mass_per_unit_area", "Mass per unit area", cfg.MassPerUnitArea),
				floatParam("joint_mass", "Joint mass", c.jointMass),
				floatParam("gravity", "Gravity", cfg.Gravity),
			},
		},
		{
			Name: "State",
			Params: []core.Parameter{
				intParam("ticks", "Ticks", c.ticks),
				floatParam("elapsed", "Elapsed", c.elapsed),
				{
					Key:   "locked",
					Label: "Locked",
					Type:  core.ParamTypeText,
					Value: formatJoints(c.lockOrder),
				},
			},
		},
	}
	return core.ParameterSnapshot{Groups: groups}
}

func formatJoints(joints []Joint) string {
	if len(joints) == 0 {
		return "none"
	}
	parts := make([]string, len(joints))
	for i, j := range joints {
		parts[i] = fmt.Sprintf("(%d,%d)", j.I, j.J)
	}
	return strings.Join(parts, " ")
}

func intParam(key, label string, value int) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeInt,
		Value: strconv.Itoa(value),
	}
}

func floatParam(key, label string, value float64) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeFloat,
		Value: strconv.FormatFloat(value, 'f', -1, 64),
	}
}
