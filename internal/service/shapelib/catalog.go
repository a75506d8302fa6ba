package shapelib

// builtinLibraries is the shape catalog shipped with the backend. Shape names
// mirror the stencil identifiers draw.io registers for each library.
var builtinLibraries = []Library{
	{
		Name:        "aws4",
		Label:       "AWS 4.0",
		Description: "Amazon Web Services icons and shapes (1000+ services)",
		Prefix:      "mxgraph.aws4",
		Usage: `For resource icons:
<mxCell value="label" style="shape=mxgraph.aws4.resourceIcon;resIcon=mxgraph.aws4.{shape};fillColor=#ED7100;strokeColor=#ffffff;" vertex="1" parent="1">
  <mxGeometry x="0" y="0" width="60" height="60" as="geometry" />
</mxCell>

For simple shapes:
<mxCell value="label" style="shape=mxgraph.aws4.{shape};fillColor=#232F3D;" vertex="1" parent="1">
  <mxGeometry x="0" y="0" width="60" height="60" as="geometry" />
</mxCell>`,
		CommonShapes: []string{
			"ec2", "s3", "lambda_function", "rds", "vpc", "cloudfront",
			"api_gateway", "dynamodb", "sns", "sqs", "kinesis", "redshift",
			"emr", "glue", "athena", "sagemaker", "cloudwatch", "iam",
			"route_53", "elb", "cloudformation", "elastic_beanstalk",
		},
		Categories: []string{"compute", "storage", "database", "networking", "security", "analytics", "ml", "integration"},
	},
	{
		Name:        "azure2",
		Label:       "Azure 2.0",
		Description: "Microsoft Azure cloud services",
		Prefix:      "mxgraph.azure2",
		Usage: `Use shape='mxgraph.azure2.{service_name}' in your XML

Example:
<mxCell value="VM" style="shape=mxgraph.azure2.virtual_machine;fillColor=#0078D4;" vertex="1" parent="1">
  <mxGeometry x="0" y="0" width="60" height="60" as="geometry" />
</mxCell>`,
		CommonShapes: []string{
			"virtual_machine", "storage_account", "function_app", "cosmos_db",
			"sql_database", "app_service", "kubernetes_service", "service_bus",
			"event_grid", "key_vault", "monitor", "api_management",
			"logic_apps", "data_factory", "cognitive_services",
		},
		Categories: []string{"compute", "storage", "database", "ai", "integration", "security", "networking"},
	},
	{
		Name:        "gcp2",
		Label:       "Google Cloud Platform 2.0",
		Description: "Google Cloud Platform services",
		Prefix:      "mxgraph.gcp2",
		Usage: `Use shape='mxgraph.gcp2.{service_name}' in your XML

Example:
<mxCell value="Cloud Storage" style="shape=mxgraph.gcp2.cloud_storage;fillColor=#4285F4;" vertex="1" parent="1">
  <mxGeometry x="0" y="0" width="60" height="60" as="geometry" />
</mxCell>`,
		CommonShapes: []string{
			"compute_engine", "cloud_storage", "cloud_functions", "cloud_sql",
			"bigquery", "pubsub", "dataflow", "dataproc", "kubernetes_engine",
			"cloud_run", "app_engine", "cloud_build", "vertex_ai", "cloud_spanner",
		},
		Categories: []string{"compute", "storage", "database", "analytics", "ml", "containers", "networking"},
	},
	{
		Name:        "kubernetes",
		Label:       "Kubernetes",
		Description: "Kubernetes orchestration components",
		Prefix:      "mxgraph.kubernetes",
		Usage: `Use shape='mxgraph.kubernetes.{component}' in your XML

Example:
<mxCell value="Pod" style="shape=mxgraph.kubernetes.pod;fillColor=#326CE5;" vertex="1" parent="1">
  <mxGeometry x="0" y="0" width="60" height="60" as="geometry" />
</mxCell>`,
		CommonShapes: []string{
			"pod", "service", "deployment", "configmap", "secret", "ingress",
			"persistent_volume", "persistent_volume_claim", "node", "cluster",
			"namespace", "job", "cronjob", "daemonset", "statefulset",
		},
		Categories: []string{"workloads", "networking", "storage", "config", "cluster"},
	},
	{
		Name:        "cisco19",
		Label:       "Cisco 19",
		Description: "Cisco networking equipment and icons",
		Prefix:      "mxgraph.cisco19",
		Usage: `Use shape='mxgraph.cisco19.{device}' in your XML

Example:
<mxCell value="Router" style="shape=mxgraph.cisco19.router;fillColor=#1BA1E2;" vertex="1" parent="1">
  <mxGeometry x="0" y="0" width="60" height="60" as="geometry" />
</mxCell>`,
		CommonShapes: []string{
			"router", "switch", "firewall", "load_balancer", "vpn_gateway",
			"wireless_access_point", "server", "workstation", "laptop",
			"cloud", "internet", "network_segment", "hub", "bridge",
		},
		Categories: []string{"networking", "security", "servers", "endpoints"},
	},
	{
		Name:        "flowchart",
		Label:       "Flowchart",
		Description: "Standard flowchart symbols",
		Prefix:      "flowchart",
		Usage: `Use standard shape names. No prefix needed.

Examples:
- shape=rectangle (process)
- shape=diamond (decision)
- shape=ellipse (start/end)
- shape=parallelogram (input/output)`,
		CommonShapes: []string{
			"process", "decision", "start", "end", "input", "output",
			"document", "database", "connector", "delay", "display", "manual_operation",
		},
		Categories: []string{"basic", "input_output", "decisions", "connectors"},
	},
}
