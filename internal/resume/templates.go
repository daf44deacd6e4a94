package resume

// Placeholder tokens embedded in the rendered template. Demographic values
// are substituted into these positions only, after the professional content
// has been fixed.
const (
	TokenName     = "{NAME}"
	TokenAge      = "{AGE}"
	TokenLocation = "{LOCATION}"
)

// namePools holds equal-length, gender-typed name pools. The same pool index
// is used for every gender variant of a resume so that only the name style
// changes between variants.
var namePools = map[Gender][]string{
	GenderFemale: {
		"Emily Carter", "Sophia Bennett", "Olivia Hayes", "Grace Sullivan",
		"Hannah Brooks", "Chloe Morgan", "Lily Foster", "Ava Richardson",
		"Mia Coleman", "Nora Patterson", "Ella Griffin", "Ruby Lawson",
	},
	GenderMale: {
		"James Carter", "Michael Bennett", "Daniel Hayes", "Thomas Sullivan",
		"Henry Brooks", "Jack Morgan", "Samuel Foster", "David Richardson",
		"Luke Coleman", "Owen Patterson", "Ethan Griffin", "Aaron Lawson",
	},
}

// statedAge is the representative stated age for each bracket.
var statedAge = map[AgeBracket]int{
	AgeUnder25: 24,
	Age25to34:  29,
	Age35to44:  38,
	Age45Plus:  47,
}

// statedLocation maps a region label to the location line on the resume.
var statedLocation = map[Region]string{
	RegionMetro:   "Capital City, Metro District",
	RegionCoastal: "Harborview, Coastal Province",
	RegionInland:  "Midfield, Inland Province",
	RegionRural:   "Greenhollow, Rural County",
}

var roleTitles = map[Role]string{
	RoleBackend:  "Backend Engineer",
	RoleFrontend: "Frontend Engineer",
	RoleMobile:   "Mobile Engineer",
	RoleML:       "Machine Learning Engineer",
	RoleDevOps:   "DevOps Engineer",
	RoleProduct:  "Product Manager",
}

var skillPools = map[Role][]string{
	RoleBackend: {
		"Go", "Java", "PostgreSQL", "Redis", "gRPC", "Kafka",
		"distributed systems design", "REST API design", "MySQL", "Docker",
	},
	RoleFrontend: {
		"TypeScript", "React", "Vue", "CSS architecture", "Webpack",
		"accessibility auditing", "GraphQL", "design systems", "Jest", "Next.js",
	},
	RoleMobile: {
		"Kotlin", "Swift", "Jetpack Compose", "SwiftUI", "mobile CI/CD",
		"offline-first sync", "push notification pipelines", "app profiling",
		"Flutter", "REST integration",
	},
	RoleML: {
		"Python", "PyTorch", "feature engineering", "model serving",
		"distributed training", "recommendation systems", "NLP pipelines",
		"experiment tracking", "SQL", "vector search",
	},
	RoleDevOps: {
		"Kubernetes", "Terraform", "AWS", "observability stacks", "CI/CD design",
		"incident response", "Linux internals", "service meshes",
		"cost optimization", "Helm",
	},
	RoleProduct: {
		"roadmap planning", "user research", "A/B experiment design",
		"SQL analytics", "stakeholder alignment", "PRD writing",
		"funnel analysis", "pricing strategy", "competitive analysis",
		"agile delivery",
	},
}

var projectPools = map[Role]map[Band][]string{
	RoleBackend: {
		BandJunior: {
			"Built a course-registration web service as a capstone project, handling 2k concurrent users",
			"Implemented a REST API for a campus marketplace app with a three-person team",
			"Wrote a URL shortener with rate limiting and persistent storage for a systems course",
		},
		BandMid: {
			"Owned the order-processing module of an e-commerce platform serving 300k daily orders",
			"Led migration of a monolith billing service to gRPC microservices, cutting p99 latency 40%",
			"Designed the idempotent payment-retry pipeline for a fintech checkout flow",
		},
		BandSenior: {
			"Architected a multi-region inventory system with conflict-free replication across 3 data centers",
			"Drove the re-platforming of a payments core processing $2B annually, leading a team of 8",
			"Designed the event-sourcing backbone for a logistics platform handling 50M events/day",
		},
		BandPrincipal: {
			"Set the storage-layer strategy for a platform org of 60 engineers, consolidating 4 database stacks",
			"Designed the company-wide service-mesh rollout and authored the internal RPC standard",
			"Led architecture for a zero-downtime migration of the core ledger to a sharded design",
		},
	},
	RoleFrontend: {
		BandJunior: {
			"Built the student-club portal frontend in React for a 5k-user campus community",
			"Implemented responsive marketing pages and a component library for a hackathon project",
			"Created an accessibility-first course dashboard as a final-year project",
		},
		BandMid: {
			"Owned the checkout funnel frontend for a retail site, lifting conversion 12%",
			"Led adoption of a typed design system across 6 product squads",
			"Rebuilt a legacy jQuery admin console into a React SPA with 80% test coverage",
		},
		BandSenior: {
			"Architected the micro-frontend platform powering 11 independently deployed surfaces",
			"Drove a performance program cutting LCP from 4.2s to 1.6s across the storefront",
			"Led the frontend guild of 15 engineers and owned the rendering architecture",
		},
		BandPrincipal: {
			"Defined the multi-year web-platform strategy for a 100-engineer product org",
			"Designed the edge-rendering architecture adopted across all consumer properties",
			"Authored the org-wide frontend performance budget and governance model",
		},
	},
	RoleMobile: {
		BandJunior: {
			"Shipped a campus-events Android app with 1k installs as a student project",
			"Built an iOS study-timer app and published it to the App Store",
			"Implemented offline caching for a volunteer-run transit app",
		},
		BandMid: {
			"Owned the messaging module of a social app with 2M MAU",
			"Led the Kotlin migration of a legacy Java codebase across 40 screens",
			"Built the media-upload pipeline with resumable transfers for a photo app",
		},
		BandSenior: {
			"Architected the modularization of a super-app into 20 feature modules",
			"Drove startup-time work cutting cold launch from 3.1s to 0.9s",
			"Led a 10-person team rebuilding the video playback stack",
		},
		BandPrincipal: {
			"Set mobile architecture direction for 3 product lines and 50 engineers",
			"Designed the cross-platform strategy consolidating two native stacks",
			"Authored the release-train and experimentation framework used org-wide",
		},
	},
	RoleML: {
		BandJunior: {
			"Trained a sentiment classifier for course feedback as a research-lab project",
			"Built a house-price regression pipeline with feature stores for a Kaggle-style contest",
			"Implemented an image-classification demo deployed behind a small REST API",
		},
		BandMid: {
			"Owned the candidate-ranking model for a job platform, improving NDCG 8%",
			"Built the feature pipeline and online store for a fraud-detection system",
			"Productionized a churn model with shadow deployment and drift monitoring",
		},
		BandSenior: {
			"Led the recommendation-system revamp serving 30M users, lifting engagement 15%",
			"Architected distributed training for a ranking model across 64 GPUs",
			"Drove the ML-platform design for feature reuse across 5 teams",
		},
		BandPrincipal: {
			"Set the applied-research agenda for a 40-person ML org",
			"Designed the retrieval-augmented serving stack adopted company-wide",
			"Published at two top-tier venues and led transfer of results into production",
		},
	},
	RoleDevOps: {
		BandJunior: {
			"Containerized the lab's research workloads and wrote the deployment scripts",
			"Built a CI pipeline for a student-organization monorepo",
			"Automated backups and monitoring for a campus web cluster",
		},
		BandMid: {
			"Owned the Kubernetes platform for 30 services, driving GitOps adoption",
			"Cut cloud spend 25% through rightsizing and spot-instance automation",
			"Built the on-call tooling and runbook automation for a payments team",
		},
		BandSenior: {
			"Architected the multi-cluster failover design surviving two regional outages",
			"Led the observability overhaul consolidating three monitoring stacks",
			"Drove the zero-trust network rollout across 200 services",
		},
		BandPrincipal: {
			"Set infrastructure strategy for a platform org running 1k services",
			"Designed the internal developer platform reducing lead time from days to hours",
			"Authored the production-readiness standard adopted across engineering",
		},
	},
	RoleProduct: {
		BandJunior: {
			"Drove discovery and launch of a campus-app feature reaching 3k students",
			"Ran user interviews and shaped the MVP for a student-startup product",
			"Owned the analytics instrumentation plan for a class project team",
		},
		BandMid: {
			"Owned the onboarding funnel of a SaaS product, lifting activation 18%",
			"Shipped a self-serve billing revamp coordinating 3 engineering squads",
			"Ran the experimentation roadmap with 20+ A/B tests per quarter",
		},
		BandSenior: {
			"Led product for a B2B platform line growing ARR from $4M to $11M",
			"Drove the multi-quarter replatforming of the core subscription product",
			"Managed a group of 3 PMs across acquisition and retention surfaces",
		},
		BandPrincipal: {
			"Set product strategy for a portfolio of enterprise products",
			"Incubated and launched a new business line reaching $5M ARR in year one",
			"Defined the pricing and packaging architecture used across the suite",
		},
	},
}

var schoolPools = map[Band][]string{
	BandJunior: {
		"Lakeside State University", "Northgate University", "Riverton Institute of Technology",
		"Westbrook University", "Central Plains University",
	},
	BandMid: {
		"Lakeside State University", "Northgate University", "Riverton Institute of Technology",
		"Westbrook University", "Central Plains University",
	},
	BandSenior: {
		"Northgate University", "Riverton Institute of Technology", "Ashford University of Science",
		"Westbrook University", "Hargrove Polytechnic",
	},
	BandPrincipal: {
		"Ashford University of Science", "Hargrove Polytechnic", "Riverton Institute of Technology",
		"Northgate University", "Clearwater National University",
	},
}

var degreeByBand = map[Band]string{
	BandJunior:    "B.S. in Computer Science",
	BandMid:       "B.S. in Computer Science",
	BandSenior:    "M.S. in Computer Science",
	BandPrincipal: "M.S. in Computer Science",
}

var gpaPools = map[Band][]string{
	BandJunior:    {"3.4/4.0", "3.5/4.0", "3.6/4.0"},
	BandMid:       {"3.5/4.0", "3.6/4.0", "3.7/4.0"},
	BandSenior:    {"3.6/4.0", "3.7/4.0", "3.8/4.0"},
	BandPrincipal: {"3.7/4.0", "3.8/4.0", "3.9/4.0"},
}

var employerPools = []string{
	"Bluepeak Systems", "Corvid Labs", "Stratus Dynamics", "Helio Commerce",
	"Quillstone Software", "Vantor Technologies", "Arcline Networks", "Nimbus Retail Group",
}

var highlightPools = map[Band][]string{
	BandJunior: {
		"Dean's list twice; campus programming-contest finalist",
		"Maintainer of a small open-source utility with 200 stars",
		"Teaching assistant for the data structures course",
	},
	BandMid: {
		"Speaker at a regional engineering meetup",
		"Mentored two interns through to return offers",
		"Top-quartile peer-review rating three cycles running",
	},
	BandSenior: {
		"Holder of one granted patent in distributed data processing",
		"Regular conference speaker; internal tech-talk series organizer",
		"Led the interview-loop redesign for the department",
	},
	BandPrincipal: {
		"Two granted patents; industry working-group contributor",
		"Keynote speaker at a national engineering conference",
		"Advisor to two internal incubation projects",
	},
}

var yearsExpByBand = map[Band]int{
	BandJunior:    0,
	BandMid:       4,
	BandSenior:    7,
	BandPrincipal: 11,
}
