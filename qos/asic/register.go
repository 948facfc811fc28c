// register.go wires qos/asic constructors into the qos package's registration
// variable (NewFamilyStrategyFunc). This init() runs when any package imports
// qos/asic, breaking the import cycle between qos/ (interface owner) and
// qos/asic/ (implementation). Test code in package qos uses
// asic_import_test.go for the blank import.
package asic

import "github.com/sonic-net/qosgen/qos"

func init() {
	qos.NewFamilyStrategyFunc = NewStrategy
}
