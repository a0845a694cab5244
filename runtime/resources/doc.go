// Package resources is the registry of resource information: it loads
// metadata about external data resources from a structured file and builds
// typed descriptors telling consumers how to read a resource for a given
// data category.
//
// # Source file
//
// The metadata file maps resource names to free-form attribute objects. An
// attribute object may carry an "inputs" object mapping data categories to
// the keyword arguments of the descriptor for that category:
//
//	{
//	  "PhosphoSite": {
//	    "license": "CC BY-NC-SA 3.0",
//	    "inputs": {
//	      "enzyme_substrate": {
//	        "input_method": "phosphosite.phosphosite_enzyme_substrate",
//	        "ncbi_tax_id": 9606
//	      }
//	    }
//	  },
//	  "SIGNOR": {
//	    "inputs": {
//	      "enzyme_substrate": {"input_method": "signor.signor_enzyme_substrate"},
//	      "interaction": {"name": "SIGNOR-directed", "input_method": "signor.signor_interactions"}
//	    }
//	  }
//	}
//
// JSON and YAML (.yaml, .yml) are accepted. Resource order in the file is
// kept and determines the order of Collect results.
//
// # Loading
//
// New logs the default path and performs the first load. Later calls to
// Update are no-ops unless a path or Force is given; loads merge into the
// registry unless it is empty or RemoveOld is set:
//
//	ctrl, err := resources.New(resources.WithPath("data", "resources.json"))
//	...
//	// compose a second file over the first, later file wins per key
//	err = ctrl.Update(resources.UpdateOptions{Path: "local.yaml"})
//
// A file that cannot be read is reported to the console and leaves the
// registry as it was. A file that cannot be decoded is an error.
//
// # Descriptors
//
// Collect derives a type name from the category (enzyme_substrate ->
// EnzymeSubstrateResource) and looks it up in a KindTable. Descriptor
// families register their constructors in DefaultKinds from init, so a
// blank import is enough to make them available:
//
//	import _ "github.com/omnipathdb/resctl/runtime/resources/descriptors"
//
//	ds, err := ctrl.Collect("enzyme_substrate")
//
// Each constructor receives a deep copy of the declared arguments plus
// "resource_attrs" (the full record) and "name" (the registry key unless
// the arguments override it).
package resources
