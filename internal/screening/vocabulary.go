package screening

// defaultTaxonomy is the built-in skill vocabulary, keyed by category.
// Loaded into an immutable Vocabulary at startup; never mutated afterwards.
var defaultTaxonomy = map[string][]string{
	"Programming Languages": {
		"Python", "Java", "Go", "Golang", "C++", "C#", "JavaScript",
		"TypeScript", "Ruby", "PHP", "Kotlin", "Swift", "Rust", "Scala",
		"R", "MATLAB", "Perl", "Dart", "Objective-C",
	},
	"Web Frameworks": {
		"React", "Angular", "Vue", "Django", "Flask", "FastAPI", "Spring Boot",
		"Express", "Node.js", "Next.js", "Laravel", "Rails", "ASP.NET",
		"Fiber", "Gin", "Svelte",
	},
	"Databases": {
		"SQL", "MySQL", "PostgreSQL", "MongoDB", "Redis", "SQLite", "Oracle",
		"Cassandra", "DynamoDB", "Elasticsearch", "MariaDB", "Neo4j",
		"Qdrant", "Snowflake",
	},
	"Cloud Platforms": {
		"AWS", "Azure", "Google Cloud", "GCP", "Heroku", "DigitalOcean",
		"Firebase", "Vercel", "Netlify",
	},
	"DevOps Tools": {
		"Docker", "Kubernetes", "Jenkins", "Terraform", "Ansible", "Git",
		"GitHub Actions", "GitLab CI", "CircleCI", "Prometheus", "Grafana",
		"Helm", "ArgoCD", "Nginx",
	},
	"Data Science & ML": {
		"Machine Learning", "Deep Learning", "Natural Language Processing",
		"Computer Vision", "TensorFlow", "PyTorch", "Scikit-learn", "Keras",
		"Pandas", "NumPy", "Data Analysis", "Data Visualization", "Tableau",
		"Power BI", "Spark", "Hadoop", "Airflow", "Reinforcement Learning",
		"Generative AI", "LLM",
	},
	"Mobile Development": {
		"Android", "iOS", "React Native", "Flutter", "Xamarin",
	},
	"Testing & QA": {
		"Selenium", "Cypress", "JUnit", "PyTest", "Postman", "Unit Testing",
		"Integration Testing", "Test Automation",
	},
	"Soft Skills": {
		"Communication", "Leadership", "Teamwork", "Problem Solving",
		"Project Management", "Agile", "Scrum", "Time Management",
		"Stakeholder Management", "Mentoring",
	},
}

// spokenLanguages is the gazetteer used for the languages field.
var spokenLanguages = []string{
	"English", "Spanish", "French", "German", "Italian", "Portuguese",
	"Russian", "Mandarin", "Chinese", "Cantonese", "Japanese", "Korean",
	"Arabic", "Hindi", "Bengali", "Tamil", "Telugu", "Marathi", "Gujarati",
	"Punjabi", "Urdu", "Kannada", "Malayalam", "Dutch", "Swedish",
	"Norwegian", "Danish", "Finnish", "Polish", "Turkish", "Greek",
	"Hebrew", "Thai", "Vietnamese", "Indonesian", "Malay", "Swahili",
	"Tagalog",
}

// cityGazetteer is the fixed list of locations the location extractor
// recognizes. Multi-word names must come before their single-word parts so
// the longest-match-first scan does not split them.
var cityGazetteer = []string{
	"New York", "San Francisco", "Los Angeles", "New Delhi", "Navi Mumbai",
	"San Jose", "Kuala Lumpur", "Tel Aviv", "Sao Paulo", "Mexico City",
	"Cape Town", "Buenos Aires", "Ho Chi Minh City", "Hong Kong",
	"London", "Bangalore", "Bengaluru", "Mumbai", "Delhi", "Hyderabad",
	"Chennai", "Pune", "Kolkata", "Ahmedabad", "Jaipur", "Noida", "Gurgaon",
	"Gurugram", "Chandigarh", "Kochi", "Indore", "Nagpur", "Lucknow",
	"Toronto", "Vancouver", "Montreal", "Seattle", "Austin", "Boston",
	"Chicago", "Denver", "Atlanta", "Dallas", "Houston", "Miami",
	"Berlin", "Munich", "Paris", "Amsterdam", "Dublin", "Zurich", "Madrid",
	"Barcelona", "Lisbon", "Stockholm", "Oslo", "Copenhagen", "Helsinki",
	"Warsaw", "Prague", "Vienna", "Singapore", "Tokyo", "Osaka", "Seoul",
	"Beijing", "Shanghai", "Shenzhen", "Sydney", "Melbourne", "Brisbane",
	"Auckland", "Dubai", "Riyadh", "Doha", "Cairo", "Lagos", "Nairobi",
	"Johannesburg", "Manila", "Jakarta", "Bangkok", "Hanoi", "Karachi",
	"Lahore", "Islamabad", "Dhaka", "Colombo", "Kathmandu",
}
